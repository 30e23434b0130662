// internal/service/profile_service_test.go
package service

import (
	"context"
	"testing"

	"hanyu_keep/internal/model"
	"hanyu_keep/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_profileService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 未登録オーナーはUTCのデフォルトプロフィール", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewProfileService(db, repository.NewGormProfileRepository())

		profile, err := svc.GetProfile(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, "UTC", profile.Timezone)
	})
}

func Test_profileService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: タイムゾーンとメールを更新できる", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewProfileService(db, repository.NewGormProfileRepository())
		ownerID := uuid.New()

		profile, err := svc.UpdateProfile(ctx, ownerID, &model.PutProfileRequest{
			Timezone: "Asia/Tokyo",
			Email:    "learner@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "Asia/Tokyo", profile.Timezone)

		// 再取得で永続化を確認
		got, err := svc.GetProfile(ctx, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "Asia/Tokyo", got.Timezone)
		assert.Equal(t, "learner@example.com", got.Email)
	})

	t.Run("正常系: 2回目の更新は上書きになる", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewProfileService(db, repository.NewGormProfileRepository())
		ownerID := uuid.New()

		_, err := svc.UpdateProfile(ctx, ownerID, &model.PutProfileRequest{Timezone: "Asia/Tokyo"})
		require.NoError(t, err)
		_, err = svc.UpdateProfile(ctx, ownerID, &model.PutProfileRequest{Timezone: "Asia/Shanghai"})
		require.NoError(t, err)

		got, err := svc.GetProfile(ctx, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "Asia/Shanghai", got.Timezone)
	})

	t.Run("異常系: 存在しないタイムゾーンはInvalidInput", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewProfileService(db, repository.NewGormProfileRepository())

		_, err := svc.UpdateProfile(ctx, uuid.New(), &model.PutProfileRequest{Timezone: "Mars/Olympus"})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}
