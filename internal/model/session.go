// internal/model/session.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewSession は1回の復習セッションのスナップショットです。
// 構築時点の出題順を固定し、以後の採点や期日変動で並びが変わらないことを保証します。
type ReviewSession struct {
	SessionToken uuid.UUID `gorm:"type:uuid;primaryKey" json:"session_token"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	BuiltAt      time.Time `gorm:"not null" json:"built_at"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`

	// 関連 (Preload用)。Position順がセッション内の出題順。
	Cards []ReviewSessionCard `gorm:"foreignKey:SessionToken;references:SessionToken" json:"-"`
}

func (ReviewSession) TableName() string {
	return "review_sessions"
}

// ReviewSessionCard はスナップショット内の1枠（位置とカードIDの対）
type ReviewSessionCard struct {
	SessionToken uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position     int       `gorm:"primaryKey"`
	CardID       uuid.UUID `gorm:"type:uuid;not null"`
}

func (ReviewSessionCard) TableName() string {
	return "review_session_cards"
}

// Contains はカードがスナップショットに含まれるかを返します
func (s *ReviewSession) Contains(cardID uuid.UUID) bool {
	for _, c := range s.Cards {
		if c.CardID == cardID {
			return true
		}
	}
	return false
}

// 復習キューのレスポンスDTO
type SessionResponse struct {
	SessionToken uuid.UUID `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Cards        []*Card   `json:"cards"`
}
