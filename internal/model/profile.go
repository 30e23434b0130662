// internal/model/profile.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LearnerProfile はエンジンが必要とする最小限のオーナー設定です。
// タイムゾーンは期日計算とストリーク判定の暦日境界に使われるため、
// サーバーのローカル時刻に依存させず明示的に保持します。
type LearnerProfile struct {
	OwnerID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Timezone  string    `gorm:"not null;default:UTC" json:"timezone"`
	Email     string    `json:"email,omitempty"` // リマインダー配信先（空なら配信しない）
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (LearnerProfile) TableName() string {
	return "learner_profiles"
}

// プロフィール更新リクエストDTO
type PutProfileRequest struct {
	Timezone string `json:"timezone" validate:"required,timezone"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}
