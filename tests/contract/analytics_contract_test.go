package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/pulselearn/pulse-go-api/internal/dto"
	"github.com/pulselearn/pulse-go-api/internal/handler"
)

type stubAnalyticsService struct {
	summary dto.AnalyticsSummary
}

func (s stubAnalyticsService) GetSummary(context.Context, uint, string) (dto.AnalyticsSummary, error) {
	return s.summary, nil
}

func (s stubAnalyticsService) InvalidateSummary(context.Context, uint) {}

func TestAnalyticsSummaryContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "analytics_summary.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	summary := dto.AnalyticsSummary{
		StudyTime: dto.StudyTimeSummary{ThisWeek: 115, ThisMonth: 115, Total: 175},
		Courses:   dto.CourseSummary{Completed: 1, InProgress: 2, Total: 3},
		Performance: dto.PerformanceSummary{
			AverageQuizScore:       50,
			AverageAssignmentScore: 90,
			TotalQuizzes:           1,
			TotalAssignments:       1,
			CombinedAverageScore:   88,
		},
		Streaks:            dto.StreakSummary{Current: 3, Longest: 3, TotalAchievements: 2},
		WeeklyLearningGoal: 300,
		WeeklyGoalProgress: dto.GoalProgress{
			Completed:  115,
			Goal:       300,
			Percentage: 38,
			Remaining:  185,
			IsOnTrack:  false,
		},
		RecentActivity: []dto.DailyActivity{
			{Date: "2024-03-11", LessonsCompleted: 1, TimeStudied: 30},
			{Date: "2024-03-12", LessonsCompleted: 2, TimeStudied: 55},
			{Date: "2024-03-13", LessonsCompleted: 1, TimeStudied: 30},
		},
	}

	app := fiber.New()
	group := app.Group("/api/analytics", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		return c.Next()
	})
	handler.NewAnalyticsHandler(stubAnalyticsService{summary: summary}, zerolog.Nop()).Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
