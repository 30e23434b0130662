// internal/handlers/review_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"hanyu_keep/internal/middleware"
	"hanyu_keep/internal/model"
	"hanyu_keep/internal/service"
	"hanyu_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(s service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		service: s,
		logger:  logger,
	}
}

// GetReviewQueue は復習キューを返します。
// session_token クエリがあれば既存セッションの残りを、なければ新規セッションを返します。
func (h *ReviewHandler) GetReviewQueue(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetReviewQueue"))

	ownerID, err := middleware.GetOwnerIDFromContext(r.Context())
	if err != nil {
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID.String()))

	var resp *model.SessionResponse
	if tokenStr := r.URL.Query().Get("session_token"); tokenStr != "" {
		token, err := uuid.Parse(tokenStr)
		if err != nil {
			appErr := model.NewAppError("VALIDATION_ERROR", "セッショントークンの形式が正しくありません。", "session_token", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		resp, err = h.service.ResumeSession(r.Context(), ownerID, token)
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
	} else {
		resp, err = h.service.BuildSession(r.Context(), ownerID)
		if err != nil {
			logger.Error("Error building review session", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
			return
		}
	}

	if resp.Cards == nil {
		resp.Cards = []*model.Card{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// PostGrade はカード1枚の採点を受け付けます
func (h *ReviewHandler) PostGrade(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostGrade"))

	ownerID, err := middleware.GetOwnerIDFromContext(r.Context())
	if err != nil {
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID.String()))

	cardID, err := uuid.Parse(chi.URLParam(r, "card_id"))
	if err != nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "カードIDの形式が正しくありません。", "card_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.GradeRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	// validate:"uuid" を通過しているのでパースは失敗しない
	sessionToken := uuid.MustParse(req.SessionToken)

	resp, err := h.service.SubmitGrade(r.Context(), ownerID, cardID, model.Quality(req.Quality), sessionToken)
	if err != nil {
		logger.Warn("Error submitting grade", slog.String("card_id", cardID.String()), slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}
