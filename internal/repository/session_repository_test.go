// internal/repository/session_repository_test.go
package repository

import (
	"context"
	"testing"
	"time"

	"hanyu_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSession(t *testing.T, db *gorm.DB, ownerID uuid.UUID, expiresAt time.Time, cardIDs ...uuid.UUID) *model.ReviewSession {
	t.Helper()
	session := &model.ReviewSession{
		SessionToken: uuid.New(),
		OwnerID:      ownerID,
		BuiltAt:      time.Now(),
		ExpiresAt:    expiresAt,
	}
	for i, id := range cardIDs {
		session.Cards = append(session.Cards, model.ReviewSessionCard{
			SessionToken: session.SessionToken,
			Position:     i,
			CardID:       id,
		})
	}
	require.NoError(t, NewGormSessionRepository().Create(context.Background(), db, session))
	return session
}

func Test_gormSessionRepository_FindByToken(t *testing.T) {
	ctx := context.Background()
	repo := NewGormSessionRepository()

	t.Run("正常系: スナップショットがposition順で返る", func(t *testing.T) {
		db := setupRepoDB(t)
		ownerID := uuid.New()
		id1, id2, id3 := uuid.New(), uuid.New(), uuid.New()
		created := seedSession(t, db, ownerID, time.Now().Add(time.Hour), id1, id2, id3)

		session, err := repo.FindByToken(ctx, db, ownerID, created.SessionToken)
		require.NoError(t, err)
		require.Len(t, session.Cards, 3)
		assert.Equal(t, id1, session.Cards[0].CardID)
		assert.Equal(t, id2, session.Cards[1].CardID)
		assert.Equal(t, id3, session.Cards[2].CardID)
		assert.True(t, session.Contains(id2))
		assert.False(t, session.Contains(uuid.New()))
	})

	t.Run("異常系: 他オーナーのトークンはNotFound", func(t *testing.T) {
		db := setupRepoDB(t)
		created := seedSession(t, db, uuid.New(), time.Now().Add(time.Hour), uuid.New())

		_, err := repo.FindByToken(ctx, db, uuid.New(), created.SessionToken)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func Test_gormSessionRepository_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewGormSessionRepository()

	t.Run("正常系: 期限切れセッションだけがカードごと消える", func(t *testing.T) {
		db := setupRepoDB(t)
		ownerID := uuid.New()

		expired := seedSession(t, db, ownerID, time.Now().Add(-time.Hour), uuid.New(), uuid.New())
		alive := seedSession(t, db, ownerID, time.Now().Add(time.Hour), uuid.New())

		deleted, err := repo.DeleteExpired(ctx, db, time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		_, err = repo.FindByToken(ctx, db, ownerID, expired.SessionToken)
		assert.ErrorIs(t, err, model.ErrNotFound)

		var orphanCount int64
		require.NoError(t, db.Model(&model.ReviewSessionCard{}).
			Where("session_token = ?", expired.SessionToken).
			Count(&orphanCount).Error)
		assert.Zero(t, orphanCount)

		still, err := repo.FindByToken(ctx, db, ownerID, alive.SessionToken)
		require.NoError(t, err)
		assert.Len(t, still.Cards, 1)
	})
}
