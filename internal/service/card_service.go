// internal/service/card_service.go
package service

import (
	"context"
	"errors"
	"time"

	"hanyu_keep/internal/middleware"
	"hanyu_keep/internal/model"
	"hanyu_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CardService はカードの登録・参照・アーカイブを担います。
type CardService interface {
	CreateCard(ctx context.Context, ownerID uuid.UUID, req *model.PostCardRequest) (*model.Card, error)
	GetCard(ctx context.Context, ownerID, cardID uuid.UUID) (*model.Card, error)
	ListCards(ctx context.Context, ownerID uuid.UUID) ([]*model.Card, error)
	ArchiveCard(ctx context.Context, ownerID, cardID uuid.UUID) error
	GetCardHistory(ctx context.Context, ownerID, cardID uuid.UUID) ([]*model.ReviewRecord, error)
}

type cardService struct {
	db       *gorm.DB
	cardRepo repository.CardRepository
	logRepo  repository.ReviewLogRepository
}

func NewCardService(db *gorm.DB, cardRepo repository.CardRepository, logRepo repository.ReviewLogRepository) CardService {
	return &cardService{db: db, cardRepo: cardRepo, logRepo: logRepo}
}

func (s *cardService) CreateCard(ctx context.Context, ownerID uuid.UUID, req *model.PostCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID)

	contentType := model.ContentType(req.ContentType)
	if !contentType.Valid() {
		return nil, model.NewAppError("VALIDATION_ERROR", "サポートされていないコンテンツ種別です。", "content_type", model.ErrInvalidInput)
	}

	// 新規カードは即時に復習対象となる（初回間隔は1日扱い）
	now := time.Now()
	card := &model.Card{
		CardID:       uuid.New(),
		OwnerID:      ownerID,
		ContentType:  contentType,
		Front:        req.Front,
		Back:         req.Back,
		Context:      req.Context,
		SourceType:   req.SourceType,
		SourceID:     req.SourceID,
		IntervalDays: 1,
		Repetitions:  0,
		Lapses:       0,
		DueAt:        now,
		Version:      1,
	}

	if err := s.cardRepo.Create(ctx, s.db, card); err != nil {
		logger.Error("Failed to create card", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの登録に失敗しました。", "", err)
	}

	logger.Info("Card created", "card_id", card.CardID, "content_type", card.ContentType)
	return card, nil
}

func (s *cardService) GetCard(ctx context.Context, ownerID, cardID uuid.UUID) (*model.Card, error) {
	card, err := s.cardRepo.FindByID(ctx, s.db, ownerID, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
		}
		middleware.GetLogger(ctx).Error("Failed to find card", "card_id", cardID, "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, ownerID uuid.UUID) ([]*model.Card, error) {
	cards, err := s.cardRepo.FindByOwner(ctx, s.db, ownerID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to list cards", "owner_id", ownerID, "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カード一覧の取得に失敗しました。", "", err)
	}
	return cards, nil
}

func (s *cardService) ArchiveCard(ctx context.Context, ownerID, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID, "card_id", cardID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.cardRepo.Archive(ctx, tx, ownerID, cardID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to archive card", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "カードのアーカイブに失敗しました。", "", err)
	}

	logger.Info("Card archived")
	return nil
}

func (s *cardService) GetCardHistory(ctx context.Context, ownerID, cardID uuid.UUID) ([]*model.ReviewRecord, error) {
	// 履歴はアーカイブ済みカードについても参照可能とする（ログは不変のため）
	records, err := s.logRepo.FindByCard(ctx, s.db, ownerID, cardID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to load review history", "card_id", cardID, "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習履歴の取得に失敗しました。", "", err)
	}
	return records, nil
}
