// internal/service/streak_service.go
package service

import (
	"context"
	"errors"

	"hanyu_keep/internal/middleware"
	"hanyu_keep/internal/model"
	"hanyu_keep/internal/repository"
	"hanyu_keep/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StreakService interface {
	GetStreak(ctx context.Context, ownerID uuid.UUID) (*model.StreakState, error)
	// RecordActivity は localDate（オーナーの暦日 yyyy-mm-dd）の学習実績を反映します。
	// 同じ日の2回目以降の呼び出しは何もしません。
	RecordActivity(ctx context.Context, ownerID uuid.UUID, localDate string) error
}

type streakService struct {
	db         *gorm.DB
	streakRepo repository.StreakRepository
}

func NewStreakService(db *gorm.DB, streakRepo repository.StreakRepository) StreakService {
	return &streakService{
		db:         db,
		streakRepo: streakRepo,
	}
}

func (s *streakService) GetStreak(ctx context.Context, ownerID uuid.UUID) (*model.StreakState, error) {
	state, err := s.streakRepo.Find(ctx, s.db, ownerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// 一度も学習していないオーナーはゼロ値のストリーク
			return &model.StreakState{OwnerID: ownerID}, nil
		}
		middleware.GetLogger(ctx).Error("Failed to find streak state", "owner_id", ownerID, "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ストリークの取得に失敗しました。", "", err)
	}
	return state, nil
}

func (s *streakService) RecordActivity(ctx context.Context, ownerID uuid.UUID, localDate string) error {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID, "activity_date", localDate)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := s.streakRepo.Find(ctx, tx, ownerID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}

		if state == nil || errors.Is(err, model.ErrNotFound) {
			// 初回の学習日
			state = &model.StreakState{
				OwnerID:        ownerID,
				Current:        1,
				Longest:        1,
				LastActiveDate: localDate,
			}
			return s.streakRepo.Save(ctx, tx, state)
		}

		switch state.LastActiveDate {
		case localDate:
			// 同日2回目以降の復習はストリークに影響しない
			return nil
		case srs.PrevDate(localDate):
			state.Current++
		default:
			// 1日以上空いたのでリセット
			state.Current = 1
		}

		if state.Current > state.Longest {
			state.Longest = state.Current
		}
		state.LastActiveDate = localDate

		logger.Debug("Streak updated", "current", state.Current, "longest", state.Longest)
		return s.streakRepo.Save(ctx, tx, state)
	})
}
