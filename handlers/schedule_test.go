package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mentora/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScheduleService struct {
	schedule *models.WeeklySchedule
	err      error
}

func (s *stubScheduleService) CreateWeeklySchedule(ctx context.Context, providerID string, days []models.DaySchedule) (*models.WeeklySchedule, error) {
	return s.schedule, s.err
}

func (s *stubScheduleService) GetWeeklySchedule(ctx context.Context, providerID string) (*models.WeeklySchedule, error) {
	return s.schedule, s.err
}

func (s *stubScheduleService) UpdateWeeklySchedule(ctx context.Context, providerID string, days []models.DaySchedule) (*models.WeeklySchedule, error) {
	return s.schedule, s.err
}

func scheduleRouter(svc *stubScheduleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewScheduleHandler(svc)
	r.POST("/api/providers/:providerId/schedule", h.CreateWeeklyScheduleHandler)
	r.GET("/api/providers/:providerId/schedule", h.GetWeeklyScheduleHandler)
	r.PUT("/api/providers/:providerId/schedule", h.UpdateWeeklyScheduleHandler)
	return r
}

const scheduleBody = `{"days":[{"day":"Monday","slots":[{"startTime":"09:00","modes":["video"],"price":1000}]}]}`

func TestCreateScheduleHandlerStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"created", nil, http.StatusCreated},
		{"validation", models.NewValidationError("slot start time must be HH:MM"), http.StatusBadRequest},
		{"conflict", models.NewConflictError("weekly schedule already exists"), http.StatusConflict},
		{"unavailable", models.NewUnavailableError("store down"), http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubScheduleService{schedule: &models.WeeklySchedule{ProviderID: "prov-1"}, err: tc.err}
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/providers/prov-1/schedule", strings.NewReader(scheduleBody))
			req.Header.Set("Content-Type", "application/json")
			scheduleRouter(svc).ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestCreateScheduleHandlerRejectsBadJSON(t *testing.T) {
	svc := &stubScheduleService{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/providers/prov-1/schedule", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	scheduleRouter(svc).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetScheduleHandlerReturnsNullWhenAbsent(t *testing.T) {
	svc := &stubScheduleService{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/providers/prov-1/schedule", nil)
	scheduleRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"schedule":null}`, w.Body.String())
}

func TestUpdateScheduleHandlerNotFound(t *testing.T) {
	svc := &stubScheduleService{err: models.NewNotFoundError("no weekly schedule exists")}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/providers/prov-1/schedule", strings.NewReader(scheduleBody))
	req.Header.Set("Content-Type", "application/json")
	scheduleRouter(svc).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
