// internal/handlers/card_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hanyu_keep/internal/handlers"
	"hanyu_keep/internal/model"

	svc_mocks "hanyu_keep/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCardHandler_PostCard(t *testing.T) {
	ownerID := uuid.New()

	t.Run("正常系: 201でカードが返る", func(t *testing.T) {
		mockService := new(svc_mocks.CardService)
		handler := handlers.NewCardHandler(mockService, discardLogger())

		created := &model.Card{
			CardID:       uuid.New(),
			OwnerID:      ownerID,
			ContentType:  model.ContentVocabulary,
			Front:        "医院",
			Back:         "病院",
			IntervalDays: 1,
			DueAt:        time.Now(),
		}
		mockService.On("CreateCard", mock.Anything, ownerID, mock.AnythingOfType("*model.PostCardRequest")).
			Return(created, nil).Once()

		body := model.PostCardRequest{ContentType: "vocabulary", Front: "医院", Back: "病院"}
		req := newJsonRequest(t, http.MethodPost, "/api/v1/cards", body)
		req = req.WithContext(ctxWithOwner(ownerID))
		rr := httptest.NewRecorder()

		handler.PostCard(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp model.Card
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, created.CardID, resp.CardID)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: frontが空なら400でサービスを呼ばない", func(t *testing.T) {
		mockService := new(svc_mocks.CardService)
		handler := handlers.NewCardHandler(mockService, discardLogger())

		body := model.PostCardRequest{ContentType: "vocabulary", Front: "", Back: "病院"}
		req := newJsonRequest(t, http.MethodPost, "/api/v1/cards", body)
		req = req.WithContext(ctxWithOwner(ownerID))
		rr := httptest.NewRecorder()

		handler.PostCard(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "CreateCard")
	})

	t.Run("異常系: 未知のcontent_typeは400", func(t *testing.T) {
		mockService := new(svc_mocks.CardService)
		handler := handlers.NewCardHandler(mockService, discardLogger())

		body := model.PostCardRequest{ContentType: "podcast", Front: "a", Back: "b"}
		req := newJsonRequest(t, http.MethodPost, "/api/v1/cards", body)
		req = req.WithContext(ctxWithOwner(ownerID))
		rr := httptest.NewRecorder()

		handler.PostCard(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCardHandler_GetCards(t *testing.T) {
	ownerID := uuid.New()

	t.Run("正常系: 0件でも空配列を返す", func(t *testing.T) {
		mockService := new(svc_mocks.CardService)
		handler := handlers.NewCardHandler(mockService, discardLogger())

		mockService.On("ListCards", mock.Anything, ownerID).Return(nil, nil).Once()

		req := newJsonRequest(t, http.MethodGet, "/api/v1/cards", nil)
		req = req.WithContext(ctxWithOwner(ownerID))
		rr := httptest.NewRecorder()

		handler.GetCards(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})
}

func TestCardHandler_DeleteCard(t *testing.T) {
	ownerID := uuid.New()
	cardID := uuid.New()

	t.Run("正常系: アーカイブ成功は204", func(t *testing.T) {
		mockService := new(svc_mocks.CardService)
		handler := handlers.NewCardHandler(mockService, discardLogger())

		mockService.On("ArchiveCard", mock.Anything, ownerID, cardID).Return(nil).Once()

		req := newJsonRequest(t, http.MethodDelete, "/api/v1/cards/"+cardID.String(), nil)
		req = req.WithContext(withChiURLParam(ctxWithOwner(ownerID), "card_id", cardID.String()))
		rr := httptest.NewRecorder()

		handler.DeleteCard(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: 存在しないカードは404", func(t *testing.T) {
		mockService := new(svc_mocks.CardService)
		handler := handlers.NewCardHandler(mockService, discardLogger())

		mockService.On("ArchiveCard", mock.Anything, ownerID, cardID).
			Return(model.NewAppError("NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)).Once()

		req := newJsonRequest(t, http.MethodDelete, "/api/v1/cards/"+cardID.String(), nil)
		req = req.WithContext(withChiURLParam(ctxWithOwner(ownerID), "card_id", cardID.String()))
		rr := httptest.NewRecorder()

		handler.DeleteCard(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
