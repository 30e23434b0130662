// internal/repository/aggregate_repository.go
package repository

import (
	"context"

	"hanyu_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AggregateRepository interface {
	// Increment は採点1件分を日次集計へ加算します（行がなければ作成）
	Increment(ctx context.Context, tx *gorm.DB, delta *model.DailyAggregate) error
	// Replace はロールアップ時に1日分を丸ごと置き換えます
	Replace(ctx context.Context, tx *gorm.DB, agg *model.DailyAggregate) error
	FindRange(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, fromDate, toDate string) ([]*model.DailyAggregate, error)
	// SumWindow は fromDate 以降の remembered / forgot 件数を合算します
	SumWindow(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, fromDate string) (remembered, forgot int64, err error)
}

type gormAggregateRepository struct{}

func NewGormAggregateRepository() AggregateRepository {
	return &gormAggregateRepository{}
}

func (r *gormAggregateRepository) Increment(ctx context.Context, tx *gorm.DB, delta *model.DailyAggregate) error {
	// (owner_id, activity_date) の複合主キーに対するUPSERT。
	// 並行する採点同士が同じ行を加算しても取りこぼさない。
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}, {Name: "activity_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"review_count":     gorm.Expr("daily_aggregates.review_count + ?", delta.ReviewCount),
			"remembered_count": gorm.Expr("daily_aggregates.remembered_count + ?", delta.RememberedCount),
			"forgot_count":     gorm.Expr("daily_aggregates.forgot_count + ?", delta.ForgotCount),
			"quality_sum":      gorm.Expr("daily_aggregates.quality_sum + ?", delta.QualitySum),
		}),
	}).Create(delta)
	return result.Error
}

func (r *gormAggregateRepository) Replace(ctx context.Context, tx *gorm.DB, agg *model.DailyAggregate) error {
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}, {Name: "activity_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"review_count", "remembered_count", "forgot_count", "quality_sum",
		}),
	}).Create(agg)
	return result.Error
}

func (r *gormAggregateRepository) FindRange(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, fromDate, toDate string) ([]*model.DailyAggregate, error) {
	var aggs []*model.DailyAggregate
	result := db.WithContext(ctx).
		Where("owner_id = ? AND activity_date >= ? AND activity_date <= ?", ownerID, fromDate, toDate).
		Order("activity_date ASC").
		Find(&aggs)
	if result.Error != nil {
		return nil, result.Error
	}
	return aggs, nil
}

func (r *gormAggregateRepository) SumWindow(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, fromDate string) (int64, int64, error) {
	var sums struct {
		Remembered int64
		Forgot     int64
	}
	result := db.WithContext(ctx).Model(&model.DailyAggregate{}).
		Select("COALESCE(SUM(remembered_count),0) AS remembered, COALESCE(SUM(forgot_count),0) AS forgot").
		Where("owner_id = ? AND activity_date >= ?", ownerID, fromDate).
		Scan(&sums)
	if result.Error != nil {
		return 0, 0, result.Error
	}
	return sums.Remembered, sums.Forgot, nil
}
