// internal/service/stats_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"hanyu_keep/internal/model"
	"hanyu_keep/internal/repository"
	"hanyu_keep/internal/srs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStatsService(db *gorm.DB) StatsService {
	return NewStatsService(
		db,
		repository.NewGormCardRepository(),
		repository.NewGormReviewLogRepository(),
		repository.NewGormAggregateRepository(),
		repository.NewGormProfileRepository(),
		testConfig(),
	)
}

func recordReviewFor(t *testing.T, svc StatsService, ownerID uuid.UUID, quality model.Quality, reviewedAt time.Time) {
	t.Helper()
	record := &model.ReviewRecord{
		ReviewID:     uuid.New(),
		CardID:       uuid.New(),
		OwnerID:      ownerID,
		SessionToken: uuid.New(),
		Quality:      quality,
		ReviewedAt:   reviewedAt,
	}
	require.NoError(t, svc.RecordReview(context.Background(), record, time.UTC))
}

func Test_statsService_GetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 定着率 remembered=8, forgot=2 で 0.8", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestStatsService(db)
		ownerID := uuid.New()

		now := time.Now()
		for i := 0; i < 8; i++ {
			recordReviewFor(t, svc, ownerID, model.QualityGood, now)
		}
		for i := 0; i < 2; i++ {
			recordReviewFor(t, svc, ownerID, model.QualityForgot, now)
		}

		stats, err := svc.GetStats(ctx, ownerID)
		require.NoError(t, err)
		assert.InDelta(t, 0.8, stats.RetentionRate, 0.0001)
		assert.Equal(t, 30, stats.WindowDays)
	})

	t.Run("正常系: hardは定着側に数える", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestStatsService(db)
		ownerID := uuid.New()

		now := time.Now()
		recordReviewFor(t, svc, ownerID, model.QualityHard, now)
		recordReviewFor(t, svc, ownerID, model.QualityForgot, now)

		stats, err := svc.GetStats(ctx, ownerID)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, stats.RetentionRate, 0.0001)
	})

	t.Run("正常系: 復習が1件もなければ定着率0", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestStatsService(db)

		stats, err := svc.GetStats(ctx, uuid.New())
		require.NoError(t, err)
		assert.Zero(t, stats.RetentionRate)
		assert.Zero(t, stats.TotalReviews)
	})

	t.Run("正常系: 学習段階別のカード枚数", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestStatsService(db)
		ownerID := uuid.New()

		reviewed := time.Now().Add(-time.Hour)
		makeCard(t, db, ownerID, 1, 0, time.Now()) // New (未採点)
		learning := makeCard(t, db, ownerID, 2, 1, time.Now().Add(24*time.Hour))
		review := makeCard(t, db, ownerID, 8, 3, time.Now().Add(7*24*time.Hour))
		lapsed := makeCard(t, db, ownerID, 1, 2, time.Now())
		require.NoError(t, db.Model(learning).Update("last_reviewed_at", reviewed).Error)
		require.NoError(t, db.Model(review).Update("last_reviewed_at", reviewed).Error)
		require.NoError(t, db.Model(lapsed).Updates(map[string]interface{}{
			"last_reviewed_at": reviewed,
			"lapses":           1,
		}).Error)

		stats, err := svc.GetStats(ctx, ownerID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.NewCards)
		assert.Equal(t, int64(1), stats.LearningCards)
		assert.Equal(t, int64(1), stats.ReviewCards)
		assert.Equal(t, int64(1), stats.LapsedCards)
		assert.Equal(t, int64(4), stats.TotalCards)
	})
}

func Test_statsService_GetDailyHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 日次集計が日付つきで返る", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestStatsService(db)
		ownerID := uuid.New()

		now := time.Now()
		recordReviewFor(t, svc, ownerID, model.QualityGood, now)
		recordReviewFor(t, svc, ownerID, model.QualityGood, now)
		recordReviewFor(t, svc, ownerID, model.QualityForgot, now)

		history, err := svc.GetDailyHistory(ctx, ownerID, 7)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, srs.LocalDate(now, time.UTC), history[0].ActivityDate)
		assert.Equal(t, 3, history[0].ReviewCount)
		assert.Equal(t, 2, history[0].RememberedCount)
		assert.Equal(t, 1, history[0].ForgotCount)
		// (100+100+0)/3 = 66
		assert.Equal(t, 66, history[0].AverageQuality)
	})

	t.Run("正常系: 履歴がなければ空スライス", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestStatsService(db)

		history, err := svc.GetDailyHistory(ctx, uuid.New(), 7)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func Test_statsService_RollupSince(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: インライン集計の取りこぼしをログから再構築する", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestStatsService(db)
		ownerID := uuid.New()

		// インライン集計を経由せず、ログだけを直接書く（更新漏れの再現）
		now := time.Now()
		for i := 0; i < 3; i++ {
			record := &model.ReviewRecord{
				ReviewID:     uuid.New(),
				CardID:       uuid.New(),
				OwnerID:      ownerID,
				SessionToken: uuid.New(),
				Quality:      model.QualityGood,
				ReviewedAt:   now,
			}
			require.NoError(t, db.Create(record).Error)
		}

		require.NoError(t, svc.RollupSince(ctx, now.Add(-time.Hour)))

		var agg model.DailyAggregate
		require.NoError(t, db.First(&agg, "owner_id = ?", ownerID).Error)
		assert.Equal(t, 3, agg.ReviewCount)
		assert.Equal(t, 3, agg.RememberedCount)
		assert.Equal(t, 0, agg.ForgotCount)
	})

	t.Run("正常系: ロールアップはログを正として集計を上書きする（再実行で変わらない）", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestStatsService(db)
		ownerID := uuid.New()

		now := time.Now()
		record := &model.ReviewRecord{
			ReviewID:     uuid.New(),
			CardID:       uuid.New(),
			OwnerID:      ownerID,
			SessionToken: uuid.New(),
			Quality:      model.QualityGood,
			ReviewedAt:   now,
		}
		require.NoError(t, db.Create(record).Error)

		// ログにない水増し分はロールアップで是正される
		recordReviewFor(t, svc, ownerID, model.QualityGood, now)
		recordReviewFor(t, svc, ownerID, model.QualityGood, now)

		require.NoError(t, svc.RollupSince(ctx, now.Add(-time.Hour)))
		require.NoError(t, svc.RollupSince(ctx, now.Add(-time.Hour)))

		var agg model.DailyAggregate
		require.NoError(t, db.First(&agg, "owner_id = ?", ownerID).Error)
		assert.Equal(t, 1, agg.ReviewCount)
	})
}
