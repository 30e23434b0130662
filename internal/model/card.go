// internal/model/card.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentType はカードの内容種別（辞書・例文・文法・医療用語・自作）
type ContentType string

const (
	ContentVocabulary  ContentType = "vocabulary"
	ContentSentence    ContentType = "sentence"
	ContentGrammar     ContentType = "grammar"
	ContentMedicalTerm ContentType = "medical_term"
	ContentCustom      ContentType = "custom"
)

// Valid は既知の内容種別かどうかを返します
func (t ContentType) Valid() bool {
	switch t {
	case ContentVocabulary, ContentSentence, ContentGrammar, ContentMedicalTerm, ContentCustom:
		return true
	}
	return false
}

// Card は復習対象1件とそのスケジュール状態を表します。
// 表示用ペイロード（Front/Back/Context）はエンジンにとって不透明データで、
// スケジュール計算には一切関与しません。
type Card struct {
	CardID      uuid.UUID   `gorm:"type:uuid;primaryKey" json:"card_id"`
	OwnerID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_cards_owner_due" json:"-"`
	ContentType ContentType `gorm:"not null" json:"content_type"`
	Front       string      `gorm:"not null" json:"front"`
	Back        string      `gorm:"not null" json:"back"`
	Context     string      `json:"context,omitempty"`
	SourceType  string      `json:"source_type,omitempty"` // dictionary / lesson / reader / scenario など
	SourceID    string      `json:"source_id,omitempty"`

	IntervalDays   int        `gorm:"not null;default:1" json:"interval_days"`
	Repetitions    int        `gorm:"not null;default:0" json:"repetitions"`
	Lapses         int        `gorm:"not null;default:0" json:"lapses"`
	DueAt          time.Time  `gorm:"not null;index:idx_cards_owner_due" json:"due_at"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`

	// 楽観ロック用の版数。UpdateSchedule が一致確認付きでインクリメントする。
	Version int64 `gorm:"not null;default:1" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // アーカイブ（論理削除）用
}

func (Card) TableName() string {
	return "cards"
}

// カード作成リクエストDTO（コンテンツ側コラボレータから受け取る形）
type PostCardRequest struct {
	ContentType string `json:"content_type" validate:"required,oneof=vocabulary sentence grammar medical_term custom"`
	Front       string `json:"front" validate:"required"`
	Back        string `json:"back" validate:"required"`
	Context     string `json:"context,omitempty"`
	SourceType  string `json:"source_type,omitempty"`
	SourceID    string `json:"source_id,omitempty"`
}
