// internal/service/mailer.go
package service

import (
	"context"
	"log/slog"

	"hanyu_keep/internal/config"
	"hanyu_keep/internal/middleware"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// --- LogMailer ---
// ローカル開発用。実際には送信せずログに出すだけ。
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// --- NewMailer ファクトリ関数 ---
func NewMailer(cfg *config.Config) Mailer {
	logger := slog.Default()
	if cfg.SES.Enabled {
		logger.Info("Initializing SES mailer...")
		return NewSESMailer(cfg)
	}
	logger.Info("Initializing Log mailer...")
	return &LogMailer{}
}
