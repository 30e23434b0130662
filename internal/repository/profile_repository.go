// internal/repository/profile_repository.go
package repository

import (
	"context"
	"errors"

	"hanyu_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	Find(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) (*model.LearnerProfile, error)
	Upsert(ctx context.Context, tx *gorm.DB, profile *model.LearnerProfile) error
	// FindAllWithEmail はリマインダー配信対象（メール登録済み）を返します
	FindAllWithEmail(ctx context.Context, db *gorm.DB) ([]*model.LearnerProfile, error)
}

type gormProfileRepository struct{}

func NewGormProfileRepository() ProfileRepository {
	return &gormProfileRepository{}
}

func (r *gormProfileRepository) Find(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) (*model.LearnerProfile, error) {
	var profile model.LearnerProfile
	result := db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &profile, nil
}

func (r *gormProfileRepository) Upsert(ctx context.Context, tx *gorm.DB, profile *model.LearnerProfile) error {
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"timezone", "email"}),
	}).Create(profile)
	return result.Error
}

func (r *gormProfileRepository) FindAllWithEmail(ctx context.Context, db *gorm.DB) ([]*model.LearnerProfile, error) {
	var profiles []*model.LearnerProfile
	result := db.WithContext(ctx).
		Where("email <> ''").
		Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}
	return profiles, nil
}
