// internal/srs/policy.go
package srs

import (
	"math"
	"time"

	"hanyu_keep/internal/model"
)

// Policy は間隔反復のスケジュール規則です。値はすべて設定から注入可能で、
// ゼロ値フィールドは DefaultPolicy の値で補われます（Normalize 参照）。
type Policy struct {
	// GoodMultiplier は "good" 評価時の間隔倍率
	GoodMultiplier float64
	// HardMultiplier は "hard" 評価時の間隔倍率。
	// 0 以下なら観測挙動どおり MinIntervalDays へのリセット。
	HardMultiplier float64
	// MaxIntervalDays は間隔の上限（日）
	MaxIntervalDays int
	// MinIntervalDays は間隔の下限（日）
	MinIntervalDays int
}

// DefaultPolicy は既定の規則（good で2倍、hard/forgot は1日にリセット、上限365日）
func DefaultPolicy() Policy {
	return Policy{
		GoodMultiplier:  2.0,
		HardMultiplier:  0,
		MaxIntervalDays: 365,
		MinIntervalDays: 1,
	}
}

// Normalize は未設定フィールドを既定値で埋めた Policy を返します
func (p Policy) Normalize() Policy {
	def := DefaultPolicy()
	if p.GoodMultiplier <= 0 {
		p.GoodMultiplier = def.GoodMultiplier
	}
	if p.MaxIntervalDays <= 0 {
		p.MaxIntervalDays = def.MaxIntervalDays
	}
	if p.MinIntervalDays <= 0 {
		p.MinIntervalDays = def.MinIntervalDays
	}
	return p
}

// Outcome は1回の採点が確定させる次のスケジュール状態です
type Outcome struct {
	IntervalDays int
	Repetitions  int
	LapseDelta   int
}

// ComputeNext は現在の間隔・反復回数と評価から次の状態を計算する純粋関数です。
// 初回採点（repetitions == 0）は評価によらず最小間隔となり、
// "good" の連続に対して間隔は単調非減少です。
func (p Policy) ComputeNext(intervalDays, repetitions int, quality model.Quality) Outcome {
	p = p.Normalize()

	if intervalDays < p.MinIntervalDays {
		intervalDays = p.MinIntervalDays
	}

	// 初回採点は評価によらず最小間隔から始める
	if repetitions == 0 {
		out := Outcome{IntervalDays: p.MinIntervalDays, Repetitions: 1}
		if quality == model.QualityForgot {
			out.Repetitions = 0
			out.LapseDelta = 1
		}
		return out
	}

	switch quality {
	case model.QualityGood:
		return Outcome{
			IntervalDays: p.clamp(p.scale(intervalDays, p.GoodMultiplier)),
			Repetitions:  repetitions + 1,
		}
	case model.QualityHard:
		next := p.MinIntervalDays
		if p.HardMultiplier > 0 {
			next = p.clamp(p.scale(intervalDays, p.HardMultiplier))
		}
		return Outcome{
			IntervalDays: next,
			Repetitions:  repetitions,
		}
	default: // forgot
		return Outcome{
			IntervalDays: p.MinIntervalDays,
			Repetitions:  0,
			LapseDelta:   1,
		}
	}
}

func (p Policy) scale(intervalDays int, multiplier float64) int {
	return int(math.Round(float64(intervalDays) * multiplier))
}

func (p Policy) clamp(days int) int {
	if days < p.MinIntervalDays {
		return p.MinIntervalDays
	}
	if days > p.MaxIntervalDays {
		return p.MaxIntervalDays
	}
	return days
}

// NextDueAt は採点時刻から次の期日を求めます。日数加算はオーナーの
// タイムゾーンの暦で行うため、日付境界をまたいでもズレません。
// intervalDays >= 1 のため結果は必ず採点時刻より後になります。
func NextDueAt(reviewedAt time.Time, intervalDays int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	if intervalDays < 1 {
		intervalDays = 1
	}
	return reviewedAt.In(loc).AddDate(0, 0, intervalDays)
}

// LocalDate は時刻をオーナーのタイムゾーンの暦日 (yyyy-mm-dd) に変換します
func LocalDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02")
}

// PrevDate は暦日文字列の前日を返します。パース不能なら空文字。
func PrevDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format("2006-01-02")
}
