// internal/service/stats_service.go
package service

import (
	"context"
	"time"

	"hanyu_keep/internal/config"
	"hanyu_keep/internal/middleware"
	"hanyu_keep/internal/model"
	"hanyu_keep/internal/repository"
	"hanyu_keep/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatsService は復習ログを日次集計へ丸め、統計値を導出します。
//
// 集計は採点直後のインライン反映と定期ロールアップの二段構えです。
// インライン反映は失敗しても採点を妨げず（ログに残すのみ）、次回の
// ロールアップで復習ログから再計算されるため、GetStats / GetDailyHistory
// の値は直近の採点に対して最大でロールアップ1周期分遅れることがあります。
type StatsService interface {
	GetStats(ctx context.Context, ownerID uuid.UUID) (*model.ReviewStats, error)
	GetDailyHistory(ctx context.Context, ownerID uuid.UUID, days int) ([]*model.DailyAggregateResponse, error)
	// RecordReview は採点1件を日次集計へ加算します（ベストエフォート）
	RecordReview(ctx context.Context, record *model.ReviewRecord, loc *time.Location) error
	// RollupSince は since 以降に復習のあったオーナーの日次集計をログから再構築します
	RollupSince(ctx context.Context, since time.Time) error
}

type statsService struct {
	db          *gorm.DB
	cardRepo    repository.CardRepository
	logRepo     repository.ReviewLogRepository
	aggRepo     repository.AggregateRepository
	profileRepo repository.ProfileRepository
	cfg         *config.Config
}

func NewStatsService(db *gorm.DB, cardRepo repository.CardRepository, logRepo repository.ReviewLogRepository, aggRepo repository.AggregateRepository, profileRepo repository.ProfileRepository, cfg *config.Config) StatsService {
	return &statsService{
		db:          db,
		cardRepo:    cardRepo,
		logRepo:     logRepo,
		aggRepo:     aggRepo,
		profileRepo: profileRepo,
		cfg:         cfg,
	}
}

func (s *statsService) GetStats(ctx context.Context, ownerID uuid.UUID) (*model.ReviewStats, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID)

	loc := ownerLocation(ctx, s.db, s.profileRepo, ownerID)
	now := time.Now()

	totalReviews, err := s.logRepo.CountByOwner(ctx, s.db, ownerID)
	if err != nil {
		logger.Error("Failed to count reviews", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}

	totalCards, err := s.cardRepo.CountByOwner(ctx, s.db, ownerID)
	if err != nil {
		logger.Error("Failed to count cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}

	dueToday, err := s.cardRepo.CountDue(ctx, s.db, ownerID, now)
	if err != nil {
		logger.Error("Failed to count due cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}

	windowDays := s.cfg.App.Stats.WindowDays
	fromDate := srs.LocalDate(now.AddDate(0, 0, -(windowDays-1)), loc)
	remembered, forgot, err := s.aggRepo.SumWindow(ctx, s.db, ownerID, fromDate)
	if err != nil {
		logger.Error("Failed to sum retention window", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}

	retention := 0.0
	if remembered+forgot > 0 {
		retention = float64(remembered) / float64(remembered+forgot)
	}

	stats := &model.ReviewStats{
		TotalReviews:  totalReviews,
		TotalCards:    totalCards,
		CardsDueToday: dueToday,
		RetentionRate: retention,
		WindowDays:    windowDays,
	}

	// 学習段階別の枚数
	cards, err := s.cardRepo.FindByOwner(ctx, s.db, ownerID)
	if err != nil {
		logger.Error("Failed to list cards for stage counts", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}
	for _, card := range cards {
		switch srs.StageOf(card) {
		case srs.StageNew:
			stats.NewCards++
		case srs.StageLearning:
			stats.LearningCards++
		case srs.StageReview:
			stats.ReviewCards++
		case srs.StageLapsed:
			stats.LapsedCards++
		}
	}

	return stats, nil
}

func (s *statsService) GetDailyHistory(ctx context.Context, ownerID uuid.UUID, days int) ([]*model.DailyAggregateResponse, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID)

	if days <= 0 {
		days = s.cfg.App.Stats.WindowDays
	}

	loc := ownerLocation(ctx, s.db, s.profileRepo, ownerID)
	now := time.Now()
	toDate := srs.LocalDate(now, loc)
	fromDate := srs.LocalDate(now.AddDate(0, 0, -(days-1)), loc)

	aggs, err := s.aggRepo.FindRange(ctx, s.db, ownerID, fromDate, toDate)
	if err != nil {
		logger.Error("Failed to find daily aggregates", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "日次履歴の取得に失敗しました。", "", err)
	}

	responses := make([]*model.DailyAggregateResponse, 0, len(aggs))
	for _, a := range aggs {
		responses = append(responses, &model.DailyAggregateResponse{
			ActivityDate:    a.ActivityDate,
			ReviewCount:     a.ReviewCount,
			RememberedCount: a.RememberedCount,
			ForgotCount:     a.ForgotCount,
			AverageQuality:  a.AverageQuality(),
		})
	}
	return responses, nil
}

func (s *statsService) RecordReview(ctx context.Context, record *model.ReviewRecord, loc *time.Location) error {
	delta := &model.DailyAggregate{
		OwnerID:      record.OwnerID,
		ActivityDate: srs.LocalDate(record.ReviewedAt, loc),
		ReviewCount:  1,
		QualitySum:   record.Quality.Score(),
	}
	if record.Quality.Remembered() {
		delta.RememberedCount = 1
	} else {
		delta.ForgotCount = 1
	}
	return s.aggRepo.Increment(ctx, s.db, delta)
}

func (s *statsService) RollupSince(ctx context.Context, since time.Time) error {
	logger := middleware.GetLogger(ctx)

	owners, err := s.logRepo.DistinctOwnersSince(ctx, s.db, since)
	if err != nil {
		return err
	}

	var lastErr error
	for _, ownerID := range owners {
		if err := s.rollupOwner(ctx, ownerID, since); err != nil {
			// 集計失敗は採点経路に影響させない。次回のロールアップで再試行する。
			logger.Error("Aggregation rollup failed for owner", "owner_id", ownerID, "error", err)
			lastErr = err
		}
	}
	return lastErr
}

func (s *statsService) rollupOwner(ctx context.Context, ownerID uuid.UUID, since time.Time) error {
	loc := ownerLocation(ctx, s.db, s.profileRepo, ownerID)

	// since を含むオーナー現地日の 0時 から取り直し、触れた日は丸ごと再計算する
	dayStart, err := time.ParseInLocation("2006-01-02", srs.LocalDate(since, loc), loc)
	if err != nil {
		dayStart = since
	}

	records, err := s.logRepo.FindSince(ctx, s.db, ownerID, dayStart)
	if err != nil {
		return err
	}

	byDate := make(map[string]*model.DailyAggregate)
	for _, rec := range records {
		date := srs.LocalDate(rec.ReviewedAt, loc)
		agg, ok := byDate[date]
		if !ok {
			agg = &model.DailyAggregate{OwnerID: ownerID, ActivityDate: date}
			byDate[date] = agg
		}
		agg.ReviewCount++
		agg.QualitySum += rec.Quality.Score()
		if rec.Quality.Remembered() {
			agg.RememberedCount++
		} else {
			agg.ForgotCount++
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, agg := range byDate {
			if err := s.aggRepo.Replace(ctx, tx, agg); err != nil {
				return err
			}
		}
		return nil
	})
}
