// internal/jobs/jobs.go
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hanyu_keep/internal/config"
	"hanyu_keep/internal/repository"
	"hanyu_keep/internal/service"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// Runner はバックグラウンドの定期処理をまとめて管理します。
//   - 集計ロールアップ: 追記専用の復習ログから日次集計を再構築し、
//     インライン更新の取りこぼしを回収する
//   - リマインダー: 期日到来カードを持つ学習者へメールで通知する
//   - セッション掃除: 期限切れのセッションスナップショットを削除する
type Runner struct {
	scheduler   *gocron.Scheduler
	db          *gorm.DB
	cardRepo    repository.CardRepository
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	stats       service.StatsService
	mailer      service.Mailer
	cfg         *config.Config
	logger      *slog.Logger
}

func NewRunner(db *gorm.DB, cardRepo repository.CardRepository, profileRepo repository.ProfileRepository, sessionRepo repository.SessionRepository, stats service.StatsService, mailer service.Mailer, cfg *config.Config, logger *slog.Logger) *Runner {
	return &Runner{
		scheduler:   gocron.NewScheduler(time.UTC),
		db:          db,
		cardRepo:    cardRepo,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		stats:       stats,
		mailer:      mailer,
		cfg:         cfg,
		logger:      logger,
	}
}

// Start はジョブを登録してスケジューラを非同期で起動します
func (r *Runner) Start() {
	interval := r.cfg.Jobs.RollupIntervalMinutes
	r.scheduler.Every(interval).Minutes().Do(r.runRollup)
	r.scheduler.Every(1).Hour().Do(r.runSessionCleanup)
	r.scheduler.Every(1).Day().At(fmt.Sprintf("%02d:00", r.cfg.Jobs.ReminderHourUTC)).Do(r.runReminders)

	r.scheduler.StartAsync()
	r.logger.Info("Background jobs started",
		"rollup_interval_minutes", interval,
		"reminder_hour_utc", r.cfg.Jobs.ReminderHourUTC,
	)
}

// Stop は実行中のジョブの完了を待ってスケジューラを停止します
func (r *Runner) Stop() {
	r.scheduler.Stop()
	r.logger.Info("Background jobs stopped")
}

func (r *Runner) runRollup() {
	ctx := context.Background()
	// 前回実行以降 + 余裕1周期ぶんを再構築対象にする
	lookback := time.Duration(2*r.cfg.Jobs.RollupIntervalMinutes) * time.Minute
	since := time.Now().Add(-lookback)

	if err := r.stats.RollupSince(ctx, since); err != nil {
		r.logger.Error("Aggregate rollup failed", "error", err)
		return
	}
	r.logger.Debug("Aggregate rollup completed", "since", since)
}

func (r *Runner) runSessionCleanup() {
	ctx := context.Background()
	deleted, err := r.sessionRepo.DeleteExpired(ctx, r.db, time.Now())
	if err != nil {
		r.logger.Error("Session cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		r.logger.Info("Expired review sessions deleted", "count", deleted)
	}
}

func (r *Runner) runReminders() {
	ctx := context.Background()
	profiles, err := r.profileRepo.FindAllWithEmail(ctx, r.db)
	if err != nil {
		r.logger.Error("Failed to load reminder recipients", "error", err)
		return
	}

	now := time.Now()
	for _, profile := range profiles {
		dueCount, err := r.cardRepo.CountDue(ctx, r.db, profile.OwnerID, now)
		if err != nil {
			r.logger.Error("Failed to count due cards for reminder", "owner_id", profile.OwnerID, "error", err)
			continue
		}
		if dueCount == 0 {
			continue
		}

		subject := "今日の復習のお知らせ"
		body := fmt.Sprintf("復習待ちのカードが %d 枚あります。今日のうちに片付けましょう。", dueCount)
		if err := r.mailer.Send(ctx, profile.Email, subject, body); err != nil {
			// 1件の失敗で配信全体を止めない
			r.logger.Error("Failed to send reminder email", "owner_id", profile.OwnerID, "error", err)
		}
	}
	r.logger.Info("Reminder job completed", "recipients", len(profiles))
}
