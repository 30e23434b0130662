// internal/repository/aggregate_repository_test.go
package repository

import (
	"context"
	"testing"

	"hanyu_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_gormAggregateRepository_Increment(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAggregateRepository()

	t.Run("正常系: 同じ日への加算は1行に積み上がる", func(t *testing.T) {
		db := setupRepoDB(t)
		ownerID := uuid.New()

		require.NoError(t, repo.Increment(ctx, db, &model.DailyAggregate{
			OwnerID: ownerID, ActivityDate: "2026-08-30",
			ReviewCount: 1, RememberedCount: 1, QualitySum: 100,
		}))
		require.NoError(t, repo.Increment(ctx, db, &model.DailyAggregate{
			OwnerID: ownerID, ActivityDate: "2026-08-30",
			ReviewCount: 1, ForgotCount: 1,
		}))

		var agg model.DailyAggregate
		require.NoError(t, db.First(&agg, "owner_id = ?", ownerID).Error)
		assert.Equal(t, 2, agg.ReviewCount)
		assert.Equal(t, 1, agg.RememberedCount)
		assert.Equal(t, 1, agg.ForgotCount)
		assert.Equal(t, 100, agg.QualitySum)
	})

	t.Run("正常系: 日付が違えば別行になる", func(t *testing.T) {
		db := setupRepoDB(t)
		ownerID := uuid.New()

		require.NoError(t, repo.Increment(ctx, db, &model.DailyAggregate{
			OwnerID: ownerID, ActivityDate: "2026-08-29", ReviewCount: 1,
		}))
		require.NoError(t, repo.Increment(ctx, db, &model.DailyAggregate{
			OwnerID: ownerID, ActivityDate: "2026-08-30", ReviewCount: 1,
		}))

		aggs, err := repo.FindRange(ctx, db, ownerID, "2026-08-01", "2026-08-31")
		require.NoError(t, err)
		require.Len(t, aggs, 2)
		assert.Equal(t, "2026-08-29", aggs[0].ActivityDate)
		assert.Equal(t, "2026-08-30", aggs[1].ActivityDate)
	})
}

func Test_gormAggregateRepository_Replace(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAggregateRepository()

	t.Run("正常系: 既存行が丸ごと置き換わる", func(t *testing.T) {
		db := setupRepoDB(t)
		ownerID := uuid.New()

		require.NoError(t, repo.Increment(ctx, db, &model.DailyAggregate{
			OwnerID: ownerID, ActivityDate: "2026-08-30", ReviewCount: 7,
		}))
		require.NoError(t, repo.Replace(ctx, db, &model.DailyAggregate{
			OwnerID: ownerID, ActivityDate: "2026-08-30",
			ReviewCount: 3, RememberedCount: 2, ForgotCount: 1, QualitySum: 250,
		}))

		var agg model.DailyAggregate
		require.NoError(t, db.First(&agg, "owner_id = ?", ownerID).Error)
		assert.Equal(t, 3, agg.ReviewCount)
		assert.Equal(t, 2, agg.RememberedCount)
	})
}

func Test_gormAggregateRepository_SumWindow(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAggregateRepository()

	t.Run("正常系: 窓の外の日は合算に入らない", func(t *testing.T) {
		db := setupRepoDB(t)
		ownerID := uuid.New()

		require.NoError(t, repo.Increment(ctx, db, &model.DailyAggregate{
			OwnerID: ownerID, ActivityDate: "2026-07-01",
			ReviewCount: 10, RememberedCount: 10,
		}))
		require.NoError(t, repo.Increment(ctx, db, &model.DailyAggregate{
			OwnerID: ownerID, ActivityDate: "2026-08-30",
			ReviewCount: 10, RememberedCount: 8, ForgotCount: 2,
		}))

		remembered, forgot, err := repo.SumWindow(ctx, db, ownerID, "2026-08-01")
		require.NoError(t, err)
		assert.Equal(t, int64(8), remembered)
		assert.Equal(t, int64(2), forgot)
	})

	t.Run("正常系: 集計が1行もなければ0", func(t *testing.T) {
		db := setupRepoDB(t)

		remembered, forgot, err := repo.SumWindow(ctx, db, uuid.New(), "2026-08-01")
		require.NoError(t, err)
		assert.Zero(t, remembered)
		assert.Zero(t, forgot)
	})
}
