// internal/service/review_service.go
package service

import (
	"context"
	"errors"
	"time"

	"hanyu_keep/internal/config"
	"hanyu_keep/internal/middleware"
	"hanyu_keep/internal/model"
	"hanyu_keep/internal/repository"
	"hanyu_keep/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewService は復習セッションの構築と採点の適用を担います。
//
// セッションはスナップショットとして永続化され、構築時点の出題順が
// セッションの寿命の間固定されます。採点はカードごとに独立してコミット
// されるため、途中でセッションを放棄してもロールバックは不要です。
type ReviewService interface {
	// BuildSession は期日到来カードのスナップショットを新規作成します。
	// 期日カードが0枚でもエラーにはならず、空のセッションを返します。
	BuildSession(ctx context.Context, ownerID uuid.UUID) (*model.SessionResponse, error)
	// ResumeSession は既存スナップショットを採点済みカードを除いて返します。
	// 出題順は構築時のまま変わりません。
	ResumeSession(ctx context.Context, ownerID, sessionToken uuid.UUID) (*model.SessionResponse, error)
	// SubmitGrade は採点1件を適用します。同一 (cardID, sessionToken) の再送は
	// 保存済みの結果をそのまま返し、状態を二度変更しません。
	SubmitGrade(ctx context.Context, ownerID, cardID uuid.UUID, quality model.Quality, sessionToken uuid.UUID) (*model.GradeResponse, error)
}

type reviewService struct {
	db          *gorm.DB
	cardRepo    repository.CardRepository
	logRepo     repository.ReviewLogRepository
	sessionRepo repository.SessionRepository
	profileRepo repository.ProfileRepository
	stats       StatsService
	streaks     StreakService
	policy      srs.Policy
	cfg         *config.Config
}

func NewReviewService(db *gorm.DB, cardRepo repository.CardRepository, logRepo repository.ReviewLogRepository, sessionRepo repository.SessionRepository, profileRepo repository.ProfileRepository, stats StatsService, streaks StreakService, cfg *config.Config) ReviewService {
	policy := srs.Policy{
		GoodMultiplier:  cfg.App.Srs.GoodMultiplier,
		HardMultiplier:  cfg.App.Srs.HardMultiplier,
		MaxIntervalDays: cfg.App.Srs.MaxIntervalDays,
	}.Normalize()

	return &reviewService{
		db:          db,
		cardRepo:    cardRepo,
		logRepo:     logRepo,
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
		stats:       stats,
		streaks:     streaks,
		policy:      policy,
		cfg:         cfg,
	}
}

func (s *reviewService) BuildSession(ctx context.Context, ownerID uuid.UUID) (*model.SessionResponse, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID)

	now := time.Now()
	dueCards, err := s.cardRepo.FindDue(ctx, s.db, ownerID, now, s.cfg.App.SessionMaxSize)
	if err != nil {
		logger.Error("Failed to find due cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習キューの取得に失敗しました。", "", err)
	}

	session := &model.ReviewSession{
		SessionToken: uuid.New(),
		OwnerID:      ownerID,
		BuiltAt:      now,
		ExpiresAt:    now.Add(time.Duration(s.cfg.App.SessionTTLMinutes) * time.Minute),
		Cards:        make([]model.ReviewSessionCard, 0, len(dueCards)),
	}
	for i, card := range dueCards {
		session.Cards = append(session.Cards, model.ReviewSessionCard{
			SessionToken: session.SessionToken,
			Position:     i,
			CardID:       card.CardID,
		})
	}

	if err := s.sessionRepo.Create(ctx, s.db, session); err != nil {
		logger.Error("Failed to create review session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習セッションの作成に失敗しました。", "", err)
	}

	logger.Info("Review session built", "session_token", session.SessionToken, "cards", len(dueCards))
	return &model.SessionResponse{
		SessionToken: session.SessionToken,
		ExpiresAt:    session.ExpiresAt,
		Cards:        dueCards,
	}, nil
}

func (s *reviewService) ResumeSession(ctx context.Context, ownerID, sessionToken uuid.UUID) (*model.SessionResponse, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID, "session_token", sessionToken)

	session, err := s.loadActiveSession(ctx, ownerID, sessionToken)
	if err != nil {
		return nil, err
	}

	gradedIDs, err := s.logRepo.FindGradedCardIDs(ctx, s.db, sessionToken)
	if err != nil {
		logger.Error("Failed to find graded cards for session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習セッションの取得に失敗しました。", "", err)
	}
	graded := make(map[uuid.UUID]bool, len(gradedIDs))
	for _, id := range gradedIDs {
		graded[id] = true
	}

	var remainingIDs []uuid.UUID
	for _, sc := range session.Cards {
		if !graded[sc.CardID] {
			remainingIDs = append(remainingIDs, sc.CardID)
		}
	}

	cards, err := s.cardRepo.FindByIDs(ctx, s.db, ownerID, remainingIDs)
	if err != nil {
		logger.Error("Failed to load session cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習セッションの取得に失敗しました。", "", err)
	}

	// スナップショットの出題順を復元する（FindByIDs の並びは不定のため）
	byID := make(map[uuid.UUID]*model.Card, len(cards))
	for _, card := range cards {
		byID[card.CardID] = card
	}
	ordered := make([]*model.Card, 0, len(remainingIDs))
	for _, id := range remainingIDs {
		if card, ok := byID[id]; ok {
			// セッション構築後にアーカイブされたカードは出さない
			ordered = append(ordered, card)
		}
	}

	return &model.SessionResponse{
		SessionToken: session.SessionToken,
		ExpiresAt:    session.ExpiresAt,
		Cards:        ordered,
	}, nil
}

func (s *reviewService) SubmitGrade(ctx context.Context, ownerID, cardID uuid.UUID, quality model.Quality, sessionToken uuid.UUID) (*model.GradeResponse, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID, "card_id", cardID, "session_token", sessionToken)

	// 1. 評価値の検証
	if !quality.Valid() {
		return nil, model.NewAppError("VALIDATION_ERROR", "評価は forgot / hard / good のいずれかで指定してください。", "quality", model.ErrInvalidInput)
	}

	// 2. セッションの検証（未知・期限切れ・スナップショット外はすべて Stale）
	session, err := s.loadActiveSession(ctx, ownerID, sessionToken)
	if err != nil {
		return nil, err
	}
	if !session.Contains(cardID) {
		logger.Warn("Grade submitted for card outside session snapshot")
		return nil, model.NewAppError("STALE_SESSION", "このカードは現在のセッションに含まれていません。", "", model.ErrStaleSession)
	}

	// 3. 冪等ガード: 同一セッション内で採点済みなら保存済みの結果を返す
	if existing, err := s.logRepo.FindBySessionCard(ctx, s.db, cardID, sessionToken); err == nil {
		logger.Info("Duplicate grade submission, returning recorded result")
		return &model.GradeResponse{
			NextDueAt:       existing.DueAtAfter,
			NewIntervalDays: existing.IntervalAfter,
		}, nil
	} else if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to check idempotence guard", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "採点の処理に失敗しました。", "", err)
	}

	loc := ownerLocation(ctx, s.db, s.profileRepo, ownerID)

	// 4〜6. スケジュール計算と条件付き保存。版数競合は1回だけ再読込して再計算する。
	var record *model.ReviewRecord
	for attempt := 0; attempt < 2; attempt++ {
		record, err = s.applyGrade(ctx, ownerID, cardID, quality, sessionToken, loc)
		if err == nil {
			break
		}
		if errors.Is(err, model.ErrConflict) {
			if attempt == 0 {
				logger.Warn("Version conflict while grading, retrying once")
				continue
			}
			logger.Warn("Version conflict persisted after retry")
			return nil, model.NewAppError("CONFLICT", "他の端末の採点と競合しました。もう一度お試しください。", "", model.ErrConflict)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// ログのユニーク制約に弾かれた = 並行する同一再送が先に書いた
			existing, findErr := s.logRepo.FindBySessionCard(ctx, s.db, cardID, sessionToken)
			if findErr == nil {
				logger.Info("Concurrent duplicate grade detected, returning recorded result")
				return &model.GradeResponse{
					NextDueAt:       existing.DueAtAfter,
					NewIntervalDays: existing.IntervalAfter,
				}, nil
			}
		}
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Failed to apply grade", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "採点の処理に失敗しました。", "", err)
	}

	// 7. 集計とストリークはベストエフォート。失敗しても採点は成功扱いで、
	//    定期ロールアップが追いつくまで統計が数秒〜数分古くなるだけ。
	if aggErr := s.stats.RecordReview(ctx, record, loc); aggErr != nil {
		logger.Error("Inline aggregation failed, rollup will reconcile", "error", aggErr)
	}
	if streakErr := s.streaks.RecordActivity(ctx, ownerID, srs.LocalDate(record.ReviewedAt, loc)); streakErr != nil {
		logger.Error("Streak update failed", "error", streakErr)
	}

	logger.Info("Grade applied", "quality", quality, "new_interval_days", record.IntervalAfter)
	return &model.GradeResponse{
		NextDueAt:       record.DueAtAfter,
		NewIntervalDays: record.IntervalAfter,
	}, nil
}

// applyGrade は採点1回分の読取・計算・条件付き書込を行います。
// カード更新とログ追記は同一トランザクションでコミットされます。
func (s *reviewService) applyGrade(ctx context.Context, ownerID, cardID uuid.UUID, quality model.Quality, sessionToken uuid.UUID, loc *time.Location) (*model.ReviewRecord, error) {
	card, err := s.cardRepo.FindByID(ctx, s.db, ownerID, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
	}

	now := time.Now()
	expectedVersion := card.Version
	outcome := s.policy.ComputeNext(card.IntervalDays, card.Repetitions, quality)
	dueAt := srs.NextDueAt(now, outcome.IntervalDays, loc)

	record := &model.ReviewRecord{
		ReviewID:         uuid.New(),
		CardID:           card.CardID,
		OwnerID:          ownerID,
		SessionToken:     sessionToken,
		Quality:          quality,
		IntervalBefore:   card.IntervalDays,
		IntervalAfter:    outcome.IntervalDays,
		RepetitionsAfter: outcome.Repetitions,
		LapsesAfter:      card.Lapses + outcome.LapseDelta,
		DueAtAfter:       dueAt,
		ReviewedAt:       now,
	}

	card.IntervalDays = outcome.IntervalDays
	card.Repetitions = outcome.Repetitions
	card.Lapses += outcome.LapseDelta
	card.DueAt = dueAt
	card.LastReviewedAt = &now

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.cardRepo.UpdateSchedule(ctx, tx, card, expectedVersion); err != nil {
			return err
		}
		return s.logRepo.Create(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// loadActiveSession はセッションを取得し、期限切れ・他人のものを弾きます
func (s *reviewService) loadActiveSession(ctx context.Context, ownerID, sessionToken uuid.UUID) (*model.ReviewSession, error) {
	session, err := s.sessionRepo.FindByToken(ctx, s.db, ownerID, sessionToken)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("STALE_SESSION", "セッションが見つかりません。復習キューを再取得してください。", "", model.ErrStaleSession)
		}
		middleware.GetLogger(ctx).Error("Failed to find review session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習セッションの取得に失敗しました。", "", err)
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, model.NewAppError("STALE_SESSION", "セッションの有効期限が切れています。復習キューを再取得してください。", "", model.ErrStaleSession)
	}
	return session, nil
}
