// internal/model/stats.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// DailyAggregate はオーナー×現地暦日ごとの復習集計行です。
// ActivityDate はオーナーのタイムゾーンでの暦日 (yyyy-mm-dd)。
type DailyAggregate struct {
	OwnerID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	ActivityDate    string    `gorm:"primaryKey;size:10" json:"activity_date"`
	ReviewCount     int       `gorm:"not null;default:0" json:"review_count"`
	RememberedCount int       `gorm:"not null;default:0" json:"remembered_count"`
	ForgotCount     int       `gorm:"not null;default:0" json:"forgot_count"`
	QualitySum      int       `gorm:"not null;default:0" json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

func (DailyAggregate) TableName() string {
	return "daily_aggregates"
}

// AverageQuality は0〜100の平均想起スコア
func (a *DailyAggregate) AverageQuality() int {
	if a.ReviewCount == 0 {
		return 0
	}
	return a.QualitySum / a.ReviewCount
}

// 日次履歴レスポンスDTO
type DailyAggregateResponse struct {
	ActivityDate    string `json:"activity_date"`
	ReviewCount     int    `json:"review_count"`
	RememberedCount int    `json:"remembered_count"`
	ForgotCount     int    `json:"forgot_count"`
	AverageQuality  int    `json:"average_quality"`
}

// StreakState はオーナーごとの連続学習日数の状態です。
// LastActiveDate はオーナーのタイムゾーンでの暦日 (yyyy-mm-dd)。
type StreakState struct {
	OwnerID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Current        int       `gorm:"not null;default:0" json:"current"`
	Longest        int       `gorm:"not null;default:0" json:"longest"`
	LastActiveDate string    `gorm:"size:10" json:"last_active_date,omitempty"`
	UpdatedAt      time.Time `json:"-"`
}

func (StreakState) TableName() string {
	return "streak_states"
}

// ReviewStats は復習ログ・カード状態から導出される統計DTO（保存しない）
type ReviewStats struct {
	TotalReviews  int64 `json:"total_reviews"`
	TotalCards    int64 `json:"total_cards"`
	CardsDueToday int64 `json:"cards_due_today"`

	// RetentionRate は直近 WindowDays 日間の remembered / (remembered + forgot)。
	// 対象期間に復習がない場合は 0。
	RetentionRate float64 `json:"retention_rate"`
	WindowDays    int     `json:"window_days"`

	// 学習段階別のカード枚数
	NewCards      int64 `json:"new_cards"`
	LearningCards int64 `json:"learning_cards"`
	ReviewCards   int64 `json:"review_cards"`
	LapsedCards   int64 `json:"lapsed_cards"`
}
