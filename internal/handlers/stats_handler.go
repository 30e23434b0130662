// internal/handlers/stats_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"hanyu_keep/internal/middleware"
	"hanyu_keep/internal/model"
	"hanyu_keep/internal/service"
	"hanyu_keep/internal/webutil"
)

// 日次履歴の取得日数の上限とデフォルト
const (
	defaultHistoryDays = 30
	maxHistoryDays     = 365
)

type StatsHandler struct {
	stats   service.StatsService
	streaks service.StreakService
	logger  *slog.Logger
}

func NewStatsHandler(stats service.StatsService, streaks service.StreakService, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{
		stats:   stats,
		streaks: streaks,
		logger:  logger,
	}
}

// GetStats は総復習数・定着率・段階別カード数などのサマリを返します
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStats"))

	ownerID, err := middleware.GetOwnerIDFromContext(r.Context())
	if err != nil {
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	stats, err := h.stats.GetStats(r.Context(), ownerID)
	if err != nil {
		logger.Error("Error getting stats in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, stats)
}

// GetDailyHistory は日次集計の履歴を返します (?days=N, デフォルト30)
func (h *StatsHandler) GetDailyHistory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDailyHistory"))

	ownerID, err := middleware.GetOwnerIDFromContext(r.Context())
	if err != nil {
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	days := defaultHistoryDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 || parsed > maxHistoryDays {
			appErr := model.NewAppError("VALIDATION_ERROR", "days は1〜365の整数で指定してください。", "days", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		days = parsed
	}

	history, err := h.stats.GetDailyHistory(r.Context(), ownerID, days)
	if err != nil {
		logger.Error("Error getting daily history in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if history == nil {
		history = []*model.DailyAggregateResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, history)
}

// GetStreak は現在・最長の連続学習日数を返します
func (h *StatsHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStreak"))

	ownerID, err := middleware.GetOwnerIDFromContext(r.Context())
	if err != nil {
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	streak, err := h.streaks.GetStreak(r.Context(), ownerID)
	if err != nil {
		logger.Error("Error getting streak in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, streak)
}
