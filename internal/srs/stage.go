// internal/srs/stage.go
package srs

import "hanyu_keep/internal/model"

// Stage はカードの学習段階（導出値であり保存しない）
type Stage string

const (
	StageNew      Stage = "new"      // 一度も採点されていない
	StageLearning Stage = "learning" // 反復1〜2回
	StageReview   Stage = "review"   // 反復3回以上で定着
	StageLapsed   Stage = "lapsed"   // forgot でリセットされた状態
)

// StageOf はカードの現在の学習段階を返します。
// Lapsed は以後のスケジュールでは Learning と同じ扱いですが、
// lapses カウンタによって統計・優先度付けで区別されます。
func StageOf(card *model.Card) Stage {
	if card.LastReviewedAt == nil {
		return StageNew
	}
	if card.Repetitions >= 3 {
		return StageReview
	}
	if card.Lapses > 0 {
		return StageLapsed
	}
	return StageLearning
}
