package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/pulselearn/pulse-go-api/internal/dto"
	"github.com/pulselearn/pulse-go-api/internal/handler"
	"github.com/pulselearn/pulse-go-api/internal/service"
)

type stubAnalyticsService struct {
	summary    dto.AnalyticsSummary
	err        error
	calls      int
	lastID     uint
	lastPeriod string
}

func (s *stubAnalyticsService) GetSummary(_ context.Context, userID uint, period string) (dto.AnalyticsSummary, error) {
	s.calls++
	s.lastID = userID
	s.lastPeriod = period
	if s.err != nil {
		return dto.AnalyticsSummary{}, s.err
	}
	return s.summary, nil
}

func (s *stubAnalyticsService) InvalidateSummary(_ context.Context, _ uint) {}

var _ service.AnalyticsService = (*stubAnalyticsService)(nil)

func newAnalyticsApp(svc service.AnalyticsService, subjectID uint) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/analytics", func(c *fiber.Ctx) error {
		if subjectID != 0 {
			c.Locals("user_id", subjectID)
		}
		return c.Next()
	})
	handler.NewAnalyticsHandler(svc, zerolog.Nop()).Register(group)
	return app
}

func TestAnalyticsHandler_Success(t *testing.T) {
	svc := &stubAnalyticsService{summary: dto.AnalyticsSummary{
		StudyTime:          dto.StudyTimeSummary{ThisWeek: 115, ThisMonth: 115, Total: 175},
		Courses:            dto.CourseSummary{Completed: 1, InProgress: 2, Total: 3},
		Performance:        dto.PerformanceSummary{AverageQuizScore: 50, AverageAssignmentScore: 90, CombinedAverageScore: 88},
		Streaks:            dto.StreakSummary{Current: 3, Longest: 3},
		WeeklyLearningGoal: 300,
		WeeklyGoalProgress: dto.GoalProgress{Completed: 115, Goal: 300, Percentage: 38, Remaining: 185},
		RecentActivity:     []dto.DailyActivity{{Date: "2024-03-13", LessonsCompleted: 1, TimeStudied: 60}},
	}}

	app := newAnalyticsApp(svc, 42)
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/42?period=week", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload dto.AnalyticsSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.Equal(t, 115, payload.StudyTime.ThisWeek)
	require.Equal(t, 88, payload.Performance.CombinedAverageScore)
	require.Len(t, payload.RecentActivity, 1)
	require.Equal(t, "2024-03-13", payload.RecentActivity[0].Date)
	require.Equal(t, uint(42), svc.lastID)
	require.Equal(t, "week", svc.lastPeriod)
}

func TestAnalyticsHandler_SubjectMismatch(t *testing.T) {
	svc := &stubAnalyticsService{}

	app := newAnalyticsApp(svc, 42)
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/43", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.Equal(t, "Unauthorized", payload.Error)
	require.Equal(t, 0, svc.calls)
}

func TestAnalyticsHandler_MissingSubject(t *testing.T) {
	svc := &stubAnalyticsService{}

	app := newAnalyticsApp(svc, 0)
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/42", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, 0, svc.calls)
}

func TestAnalyticsHandler_InvalidPeriod(t *testing.T) {
	svc := &stubAnalyticsService{err: service.ErrInvalidPeriod}

	app := newAnalyticsApp(svc, 42)
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/42?period=year", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.Equal(t, "Invalid period", payload.Error)
}

func TestAnalyticsHandler_ServiceFailure(t *testing.T) {
	svc := &stubAnalyticsService{err: errors.New("db down")}

	app := newAnalyticsApp(svc, 42)
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/42", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.Equal(t, "Failed to fetch analytics", payload.Error)
}
