// internal/repository/card_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"hanyu_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository interface {
	Create(ctx context.Context, tx *gorm.DB, card *model.Card) error
	FindByID(ctx context.Context, db *gorm.DB, ownerID, cardID uuid.UUID) (*model.Card, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, cardIDs []uuid.UUID) ([]*model.Card, error)
	FindByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) ([]*model.Card, error)
	// FindDue は due_at <= asOf のカードを due_at 昇順・created_at 昇順で返します
	FindDue(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, asOf time.Time, limit int) ([]*model.Card, error)
	CountByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) (int64, error)
	CountDue(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, asOf time.Time) (int64, error)
	// UpdateSchedule は expectedVersion が一致する場合のみスケジュール項目を更新します。
	// 不一致（並行更新に負けた）なら model.ErrConflict を返します。
	UpdateSchedule(ctx context.Context, tx *gorm.DB, card *model.Card, expectedVersion int64) error
	Archive(ctx context.Context, tx *gorm.DB, ownerID, cardID uuid.UUID) error
}

type gormCardRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormCardRepository() CardRepository {
	return &gormCardRepository{}
}

func (r *gormCardRepository) Create(ctx context.Context, tx *gorm.DB, card *model.Card) error {
	result := tx.WithContext(ctx).Create(card)
	return result.Error
}

func (r *gormCardRepository) FindByID(ctx context.Context, db *gorm.DB, ownerID, cardID uuid.UUID) (*model.Card, error) {
	var card model.Card
	result := db.WithContext(ctx).
		Where("owner_id = ? AND card_id = ?", ownerID, cardID).
		First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			// 他オーナーのカード・アーカイブ済みカードもここに落ちる
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &card, nil
}

func (r *gormCardRepository) FindByIDs(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, cardIDs []uuid.UUID) ([]*model.Card, error) {
	if len(cardIDs) == 0 {
		return []*model.Card{}, nil
	}
	var cards []*model.Card
	result := db.WithContext(ctx).
		Where("owner_id = ? AND card_id IN ?", ownerID, cardIDs).
		Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}
	return cards, nil
}

func (r *gormCardRepository) FindByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) ([]*model.Card, error) {
	var cards []*model.Card
	result := db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}
	return cards, nil
}

func (r *gormCardRepository) FindDue(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, asOf time.Time, limit int) ([]*model.Card, error) {
	var cards []*model.Card
	// 並びは期日昇順、同時刻なら作成順で安定させる
	result := db.WithContext(ctx).
		Where("owner_id = ? AND due_at <= ?", ownerID, asOf).
		Order("due_at ASC, created_at ASC").
		Limit(limit).
		Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}
	return cards, nil
}

func (r *gormCardRepository) CountByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.Card{}).
		Where("owner_id = ?", ownerID).
		Count(&count)
	return count, result.Error
}

func (r *gormCardRepository) CountDue(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, asOf time.Time) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.Card{}).
		Where("owner_id = ? AND due_at <= ?", ownerID, asOf).
		Count(&count)
	return count, result.Error
}

func (r *gormCardRepository) UpdateSchedule(ctx context.Context, tx *gorm.DB, card *model.Card, expectedVersion int64) error {
	// 版数一致を条件に入れた条件付きUPDATE。RowsAffected == 0 なら
	// 別デバイスの採点が先に書き込んだとみなす。
	result := tx.WithContext(ctx).Model(&model.Card{}).
		Where("card_id = ? AND owner_id = ? AND version = ?", card.CardID, card.OwnerID, expectedVersion).
		Updates(map[string]interface{}{
			"interval_days":    card.IntervalDays,
			"repetitions":      card.Repetitions,
			"lapses":           card.Lapses,
			"due_at":           card.DueAt,
			"last_reviewed_at": card.LastReviewedAt,
			"version":          expectedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrConflict
	}
	card.Version = expectedVersion + 1
	return nil
}

func (r *gormCardRepository) Archive(ctx context.Context, tx *gorm.DB, ownerID, cardID uuid.UUID) error {
	// gorm.DeletedAt による論理削除。復習履歴は残る。
	result := tx.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&model.Card{CardID: cardID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
