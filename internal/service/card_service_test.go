// internal/service/card_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"hanyu_keep/internal/model"
	"hanyu_keep/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestCardService(db *gorm.DB) CardService {
	return NewCardService(db, repository.NewGormCardRepository(), repository.NewGormReviewLogRepository())
}

func Test_cardService_CreateCard(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 新規カードは即時レビュー対象になる", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestCardService(db)
		ownerID := uuid.New()

		card, err := svc.CreateCard(ctx, ownerID, &model.PostCardRequest{
			ContentType: "vocabulary",
			Front:       "医院",
			Back:        "病院",
			Context:     "我去医院看病。",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, card.CardID)
		assert.Equal(t, 1, card.IntervalDays)
		assert.Equal(t, 0, card.Repetitions)
		assert.Equal(t, int64(1), card.Version)
		assert.WithinDuration(t, time.Now(), card.DueAt, time.Minute)
		assert.Nil(t, card.LastReviewedAt)
	})

	t.Run("異常系: 不正なコンテンツ種別はInvalidInput", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestCardService(db)

		_, err := svc.CreateCard(ctx, uuid.New(), &model.PostCardRequest{
			ContentType: "podcast",
			Front:       "front",
			Back:        "back",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func Test_cardService_ArchiveCard(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: アーカイブ後は取得も復習キューにも出ない", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestCardService(db)
		ownerID := uuid.New()
		card := makeCard(t, db, ownerID, 1, 0, time.Now().Add(-time.Hour))

		require.NoError(t, svc.ArchiveCard(ctx, ownerID, card.CardID))

		_, err := svc.GetCard(ctx, ownerID, card.CardID)
		assert.ErrorIs(t, err, model.ErrNotFound)

		reviewSvc := newTestReviewService(db, testConfig())
		resp, err := reviewSvc.BuildSession(ctx, ownerID)
		require.NoError(t, err)
		assert.Empty(t, resp.Cards)
	})

	t.Run("異常系: 存在しないカードはNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestCardService(db)

		err := svc.ArchiveCard(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("異常系: 他オーナーのカードはアーカイブできない", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestCardService(db)
		card := makeCard(t, db, uuid.New(), 1, 0, time.Now())

		err := svc.ArchiveCard(ctx, uuid.New(), card.CardID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func Test_cardService_GetCardHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 採点履歴が新しい順に返る", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestCardService(db)
		ownerID := uuid.New()
		card := makeCard(t, db, ownerID, 1, 0, time.Now())

		old := &model.ReviewRecord{
			ReviewID: uuid.New(), CardID: card.CardID, OwnerID: ownerID,
			SessionToken: uuid.New(), Quality: model.QualityForgot,
			ReviewedAt: time.Now().Add(-48 * time.Hour),
		}
		recent := &model.ReviewRecord{
			ReviewID: uuid.New(), CardID: card.CardID, OwnerID: ownerID,
			SessionToken: uuid.New(), Quality: model.QualityGood,
			ReviewedAt: time.Now().Add(-time.Hour),
		}
		require.NoError(t, db.Create(old).Error)
		require.NoError(t, db.Create(recent).Error)

		records, err := svc.GetCardHistory(ctx, ownerID, card.CardID)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, recent.ReviewID, records[0].ReviewID)
		assert.Equal(t, old.ReviewID, records[1].ReviewID)
	})
}
