// internal/repository/session_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"hanyu_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, session *model.ReviewSession) error
	// FindByToken はスナップショット（Cards を Position 順に含む）を返します
	FindByToken(ctx context.Context, db *gorm.DB, ownerID, token uuid.UUID) (*model.ReviewSession, error)
	DeleteExpired(ctx context.Context, tx *gorm.DB, before time.Time) (int64, error)
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

func (r *gormSessionRepository) Create(ctx context.Context, tx *gorm.DB, session *model.ReviewSession) error {
	// Cards の関連行も同時にINSERTされる
	result := tx.WithContext(ctx).Create(session)
	return result.Error
}

func (r *gormSessionRepository) FindByToken(ctx context.Context, db *gorm.DB, ownerID, token uuid.UUID) (*model.ReviewSession, error) {
	var session model.ReviewSession
	result := db.WithContext(ctx).
		Preload("Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("review_session_cards.position ASC")
		}).
		Where("owner_id = ? AND session_token = ?", ownerID, token).
		First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &session, nil
}

func (r *gormSessionRepository) DeleteExpired(ctx context.Context, tx *gorm.DB, before time.Time) (int64, error) {
	// スナップショット本体を消してもログの session_token は残るため
	// 履歴の照会には影響しない
	subQuery := tx.Model(&model.ReviewSession{}).
		Select("session_token").
		Where("expires_at < ?", before)
	if err := tx.WithContext(ctx).
		Where("session_token IN (?)", subQuery).
		Delete(&model.ReviewSessionCard{}).Error; err != nil {
		return 0, err
	}
	result := tx.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&model.ReviewSession{})
	return result.RowsAffected, result.Error
}
