// internal/repository/review_log_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"hanyu_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewLogRepository は追記専用の復習ログを扱います。
// Update/Delete は提供しません（ログは不変）。
type ReviewLogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, record *model.ReviewRecord) error
	// FindBySessionCard は同一セッション内の既存採点を返します（冪等ガード用）
	FindBySessionCard(ctx context.Context, db *gorm.DB, cardID, sessionToken uuid.UUID) (*model.ReviewRecord, error)
	// FindGradedCardIDs はセッション内で採点済みのカードIDを返します
	FindGradedCardIDs(ctx context.Context, db *gorm.DB, sessionToken uuid.UUID) ([]uuid.UUID, error)
	// FindByCard はカードの採点履歴を新しい順に返します
	FindByCard(ctx context.Context, db *gorm.DB, ownerID, cardID uuid.UUID) ([]*model.ReviewRecord, error)
	FindSince(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, since time.Time) ([]*model.ReviewRecord, error)
	CountByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) (int64, error)
	// DistinctOwnersSince はロールアップ対象のオーナーを列挙します
	DistinctOwnersSince(ctx context.Context, db *gorm.DB, since time.Time) ([]uuid.UUID, error)
}

type gormReviewLogRepository struct{}

func NewGormReviewLogRepository() ReviewLogRepository {
	return &gormReviewLogRepository{}
}

func (r *gormReviewLogRepository) Create(ctx context.Context, tx *gorm.DB, record *model.ReviewRecord) error {
	result := tx.WithContext(ctx).Create(record)
	// (card_id, session_token) のユニーク制約違反は呼び出し元で
	// gorm.ErrDuplicatedKey として冪等再送に読み替える
	return result.Error
}

func (r *gormReviewLogRepository) FindBySessionCard(ctx context.Context, db *gorm.DB, cardID, sessionToken uuid.UUID) (*model.ReviewRecord, error) {
	var record model.ReviewRecord
	result := db.WithContext(ctx).
		Where("card_id = ? AND session_token = ?", cardID, sessionToken).
		First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &record, nil
}

func (r *gormReviewLogRepository) FindGradedCardIDs(ctx context.Context, db *gorm.DB, sessionToken uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := db.WithContext(ctx).Model(&model.ReviewRecord{}).
		Where("session_token = ?", sessionToken).
		Pluck("card_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

func (r *gormReviewLogRepository) FindByCard(ctx context.Context, db *gorm.DB, ownerID, cardID uuid.UUID) ([]*model.ReviewRecord, error) {
	var records []*model.ReviewRecord
	result := db.WithContext(ctx).
		Where("owner_id = ? AND card_id = ?", ownerID, cardID).
		Order("reviewed_at DESC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

func (r *gormReviewLogRepository) FindSince(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, since time.Time) ([]*model.ReviewRecord, error) {
	var records []*model.ReviewRecord
	result := db.WithContext(ctx).
		Where("owner_id = ? AND reviewed_at >= ?", ownerID, since).
		Order("reviewed_at ASC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

func (r *gormReviewLogRepository) CountByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.ReviewRecord{}).
		Where("owner_id = ?", ownerID).
		Count(&count)
	return count, result.Error
}

func (r *gormReviewLogRepository) DistinctOwnersSince(ctx context.Context, db *gorm.DB, since time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := db.WithContext(ctx).Model(&model.ReviewRecord{}).
		Where("reviewed_at >= ?", since).
		Distinct().
		Pluck("owner_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}
