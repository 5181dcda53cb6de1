package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/pulselearn/pulse-go-api/internal/dto"
	"github.com/pulselearn/pulse-go-api/internal/handler"
	"github.com/pulselearn/pulse-go-api/internal/service"
)

type stubGoalService struct {
	response    dto.GoalResponse
	updateErr   error
	lastUserID  uint
	lastPayload dto.UpdateGoalRequest
}

func (s *stubGoalService) Get(_ context.Context, userID uint) (dto.GoalResponse, error) {
	s.lastUserID = userID
	return s.response, nil
}

func (s *stubGoalService) Update(_ context.Context, userID uint, payload dto.UpdateGoalRequest) (dto.GoalResponse, error) {
	s.lastUserID = userID
	s.lastPayload = payload
	if s.updateErr != nil {
		return dto.GoalResponse{}, s.updateErr
	}
	return s.response, nil
}

var _ service.GoalService = (*stubGoalService)(nil)

func newGoalApp(svc service.GoalService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/goals", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(7))
		return c.Next()
	})
	handler.NewGoalHandler(svc, zerolog.Nop()).Register(group)
	return app
}

func TestGoalHandler_Get(t *testing.T) {
	svc := &stubGoalService{response: dto.GoalResponse{UserID: 7, WeeklyMinutes: 300}}

	app := newGoalApp(svc)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/goals/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload dto.GoalResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.Equal(t, 300, payload.WeeklyMinutes)
	require.Equal(t, uint(7), svc.lastUserID)
}

func TestGoalHandler_Update(t *testing.T) {
	svc := &stubGoalService{response: dto.GoalResponse{UserID: 7, WeeklyMinutes: 450}}

	app := newGoalApp(svc)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/goals/", strings.NewReader(`{"weekly_minutes": 450}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload dto.GoalResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.Equal(t, 450, payload.WeeklyMinutes)
	require.Equal(t, 450, svc.lastPayload.WeeklyMinutes)
}

func TestGoalHandler_UpdateValidationFailure(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validationErr := validate.Struct(dto.UpdateGoalRequest{WeeklyMinutes: 20000})
	require.Error(t, validationErr)

	svc := &stubGoalService{updateErr: validationErr}

	app := newGoalApp(svc)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/goals/", strings.NewReader(`{"weekly_minutes": 20000}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.Equal(t, "Invalid request body", payload.Error)
}

func TestGoalHandler_UpdateMalformedBody(t *testing.T) {
	svc := &stubGoalService{}

	app := newGoalApp(svc)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/goals/", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
