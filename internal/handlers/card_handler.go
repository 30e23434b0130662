// internal/handlers/card_handler.go
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

type CardHandler struct {
	service service.CardService
	logger  *slog.Logger
}

func NewCardHandler(s service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		service: s,
		logger:  logger,
	}
}

// PostCard は新しいカードリソースを作成するためのハンドラ
func (h *CardHandler) PostCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCard"))

	ownerID, err := middleware.GetOwnerIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID.String()))

	var req model.PostCardRequest
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

			// 最初のエラーを代表としてクライアントに返す
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

	card, err := h.service.CreateCard(r.Context(), ownerID, &req)
	if err != nil {
		logger.Error("Error creating card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card created successfully", slog.String("card_id", card.CardID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, card)
}

// GetCards はオーナーのカード一覧を返します
func (h *CardHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCards"))

	ownerID, err := middleware.GetOwnerIDFromContext(r.Context())
	if err != nil {
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	cards, err := h.service.ListCards(r.Context(), ownerID)
	if err != nil {
		logger.Error("Error listing cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if cards == nil {
		cards = []*model.Card{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, cards)
}

// GetCard はカード1件を返します
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCard"))

	ownerID, err := middleware.GetOwnerIDFromContext(r.Context())
	if err != nil {
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "card_id"))
	if err != nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "カードIDの形式が正しくありません。", "card_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	card, err := h.service.GetCard(r.Context(), ownerID, cardID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, card)
}

// DeleteCard はカードをアーカイブ（論理削除）します
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCard"))

	ownerID, err := middleware.GetOwnerIDFromContext(r.Context())
	if err != nil {
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "card_id"))
	if err != nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "カードIDの形式が正しくありません。", "card_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.ArchiveCard(r.Context(), ownerID, cardID); err != nil {
		logger.Error("Error archiving card in service", slog.String("card_id", cardID.String()), slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCardHistory はカードの採点履歴（新しい順）を返します
func (h *CardHandler) GetCardHistory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCardHistory"))

	ownerID, err := middleware.GetOwnerIDFromContext(r.Context())
	if err != nil {
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "card_id"))
	if err != nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "カードIDの形式が正しくありません。", "card_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	records, err := h.service.GetCardHistory(r.Context(), ownerID, cardID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if records == nil {
		records = []*model.ReviewRecord{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, records)
}
