// internal/repository/streak_repository.go
package repository

import (
	"context"
	"errors"

	"hanyu_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StreakRepository interface {
	Find(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) (*model.StreakState, error)
	Save(ctx context.Context, tx *gorm.DB, state *model.StreakState) error
}

type gormStreakRepository struct{}

func NewGormStreakRepository() StreakRepository {
	return &gormStreakRepository{}
}

func (r *gormStreakRepository) Find(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) (*model.StreakState, error) {
	var state model.StreakState
	result := db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&state)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &state, nil
}

func (r *gormStreakRepository) Save(ctx context.Context, tx *gorm.DB, state *model.StreakState) error {
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current", "longest", "last_active_date",
		}),
	}).Create(state)
	return result.Error
}
