// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Quality は学習者の自己申告による想起結果
type Quality string

const (
	QualityForgot Quality = "forgot"
	QualityHard   Quality = "hard"
	QualityGood   Quality = "good"
)

// Valid は既知の評価値かどうかを返します
func (q Quality) Valid() bool {
	switch q {
	case QualityForgot, QualityHard, QualityGood:
		return true
	}
	return false
}

// Remembered は「想起できた」扱いの評価かどうか（定着率の分子）
func (q Quality) Remembered() bool {
	return q != QualityForgot
}

// Score は日次集計用の0〜100スコア
func (q Quality) Score() int {
	switch q {
	case QualityGood:
		return 100
	case QualityHard:
		return 50
	default:
		return 0
	}
}

// ReviewRecord は採点1件の追記専用ログです。一度書かれたら変更されません。
// (card_id, session_token) のユニーク制約が同一セッション内の二重採点を防ぎ、
// 冪等な再送応答の根拠にもなります。
type ReviewRecord struct {
	ReviewID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"review_id"`
	CardID       uuid.UUID `gorm:"type:uuid;not null;index:idx_reviews_card_time;uniqueIndex:uidx_reviews_card_session" json:"card_id"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	SessionToken uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_reviews_card_session" json:"session_token"`
	Quality      Quality   `gorm:"not null" json:"quality"`

	IntervalBefore   int       `gorm:"not null" json:"interval_before"`
	IntervalAfter    int       `gorm:"not null" json:"interval_after"`
	RepetitionsAfter int       `gorm:"not null" json:"repetitions_after"`
	LapsesAfter      int       `gorm:"not null" json:"lapses_after"`
	DueAtAfter       time.Time `gorm:"not null" json:"due_at_after"`

	ReviewedAt time.Time `gorm:"not null;index:idx_reviews_card_time" json:"reviewed_at"`
}

func (ReviewRecord) TableName() string {
	return "review_records"
}

// 採点リクエストDTO
type GradeRequest struct {
	Quality      string `json:"quality" validate:"required,oneof=forgot hard good"`
	SessionToken string `json:"session_token" validate:"required,uuid"`
}

// 採点結果レスポンスDTO
type GradeResponse struct {
	NextDueAt       time.Time `json:"next_due_at"`
	NewIntervalDays int       `json:"new_interval_days"`
}
