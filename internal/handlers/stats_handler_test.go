// internal/handlers/stats_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hanyu_keep/internal/handlers"
	"hanyu_keep/internal/model"

	svc_mocks "hanyu_keep/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsHandler_GetStats(t *testing.T) {
	ownerID := uuid.New()

	t.Run("正常系: サマリが返る", func(t *testing.T) {
		mockStats := new(svc_mocks.StatsService)
		mockStreaks := new(svc_mocks.StreakService)
		handler := handlers.NewStatsHandler(mockStats, mockStreaks, discardLogger())

		mockStats.On("GetStats", mock.Anything, ownerID).Return(&model.ReviewStats{
			TotalReviews:  10,
			TotalCards:    4,
			RetentionRate: 0.8,
			WindowDays:    30,
		}, nil).Once()

		req := newJsonRequest(t, http.MethodGet, "/api/v1/stats", nil)
		req = req.WithContext(ctxWithOwner(ownerID))
		rr := httptest.NewRecorder()

		handler.GetStats(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp model.ReviewStats
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.InDelta(t, 0.8, resp.RetentionRate, 0.0001)
		mockStats.AssertExpectations(t)
	})
}

func TestStatsHandler_GetDailyHistory(t *testing.T) {
	ownerID := uuid.New()

	t.Run("正常系: daysパラメータがサービスに渡る", func(t *testing.T) {
		mockStats := new(svc_mocks.StatsService)
		mockStreaks := new(svc_mocks.StreakService)
		handler := handlers.NewStatsHandler(mockStats, mockStreaks, discardLogger())

		mockStats.On("GetDailyHistory", mock.Anything, ownerID, 7).
			Return([]*model.DailyAggregateResponse{{ActivityDate: "2026-08-30", ReviewCount: 3}}, nil).Once()

		req := newJsonRequest(t, http.MethodGet, "/api/v1/stats/daily?days=7", nil)
		req = req.WithContext(ctxWithOwner(ownerID))
		rr := httptest.NewRecorder()

		handler.GetDailyHistory(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStats.AssertExpectations(t)
	})

	t.Run("正常系: days未指定はデフォルト30日", func(t *testing.T) {
		mockStats := new(svc_mocks.StatsService)
		mockStreaks := new(svc_mocks.StreakService)
		handler := handlers.NewStatsHandler(mockStats, mockStreaks, discardLogger())

		mockStats.On("GetDailyHistory", mock.Anything, ownerID, 30).
			Return([]*model.DailyAggregateResponse{}, nil).Once()

		req := newJsonRequest(t, http.MethodGet, "/api/v1/stats/daily", nil)
		req = req.WithContext(ctxWithOwner(ownerID))
		rr := httptest.NewRecorder()

		handler.GetDailyHistory(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
		mockStats.AssertExpectations(t)
	})

	t.Run("異常系: days=0は400", func(t *testing.T) {
		mockStats := new(svc_mocks.StatsService)
		mockStreaks := new(svc_mocks.StreakService)
		handler := handlers.NewStatsHandler(mockStats, mockStreaks, discardLogger())

		req := newJsonRequest(t, http.MethodGet, "/api/v1/stats/daily?days=0", nil)
		req = req.WithContext(ctxWithOwner(ownerID))
		rr := httptest.NewRecorder()

		handler.GetDailyHistory(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStats.AssertNotCalled(t, "GetDailyHistory")
	})
}

func TestStatsHandler_GetStreak(t *testing.T) {
	ownerID := uuid.New()

	t.Run("正常系: 現在と最長のストリークが返る", func(t *testing.T) {
		mockStats := new(svc_mocks.StatsService)
		mockStreaks := new(svc_mocks.StreakService)
		handler := handlers.NewStatsHandler(mockStats, mockStreaks, discardLogger())

		mockStreaks.On("GetStreak", mock.Anything, ownerID).
			Return(&model.StreakState{OwnerID: ownerID, Current: 1, Longest: 3, LastActiveDate: "2026-08-30"}, nil).Once()

		req := newJsonRequest(t, http.MethodGet, "/api/v1/streak", nil)
		req = req.WithContext(ctxWithOwner(ownerID))
		rr := httptest.NewRecorder()

		handler.GetStreak(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp model.StreakState
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Current)
		assert.Equal(t, 3, resp.Longest)
		mockStreaks.AssertExpectations(t)
	})
}

func TestProfileHandler_PutProfile(t *testing.T) {
	ownerID := uuid.New()

	t.Run("正常系: タイムゾーン更新", func(t *testing.T) {
		mockService := new(svc_mocks.ProfileService)
		handler := handlers.NewProfileHandler(mockService, discardLogger())

		mockService.On("UpdateProfile", mock.Anything, ownerID, mock.AnythingOfType("*model.PutProfileRequest")).
			Return(&model.LearnerProfile{OwnerID: ownerID, Timezone: "Asia/Tokyo"}, nil).Once()

		body := model.PutProfileRequest{Timezone: "Asia/Tokyo"}
		req := newJsonRequest(t, http.MethodPut, "/api/v1/profile", body)
		req = req.WithContext(ctxWithOwner(ownerID))
		rr := httptest.NewRecorder()

		handler.PutProfile(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: timezone未指定は400", func(t *testing.T) {
		mockService := new(svc_mocks.ProfileService)
		handler := handlers.NewProfileHandler(mockService, discardLogger())

		req := newJsonRequest(t, http.MethodPut, "/api/v1/profile", model.PutProfileRequest{})
		req = req.WithContext(ctxWithOwner(ownerID))
		rr := httptest.NewRecorder()

		handler.PutProfile(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "UpdateProfile")
	})
}
