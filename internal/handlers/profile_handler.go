// internal/handlers/profile_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"hanyu_keep/internal/middleware"
	"hanyu_keep/internal/model"
	"hanyu_keep/internal/service"
	"hanyu_keep/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type ProfileHandler struct {
	service service.ProfileService
	logger  *slog.Logger
}

func NewProfileHandler(s service.ProfileService, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileHandler{
		service: s,
		logger:  logger,
	}
}

// GetProfile は学習者プロフィール（タイムゾーン等）を返します
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProfile"))

	ownerID, err := middleware.GetOwnerIDFromContext(r.Context())
	if err != nil {
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), ownerID)
	if err != nil {
		logger.Error("Error getting profile in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, profile)
}

// PutProfile は学習者プロフィールを更新します
func (h *ProfileHandler) PutProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutProfile"))

	ownerID, err := middleware.GetOwnerIDFromContext(r.Context())
	if err != nil {
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID.String()))

	var req model.PutProfileRequest
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

	profile, err := h.service.UpdateProfile(r.Context(), ownerID, &req)
	if err != nil {
		logger.Error("Error updating profile in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Profile updated", slog.String("timezone", profile.Timezone))
	webutil.RespondWithJSON(w, http.StatusOK, profile)
}
