package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/pulselearn/pulse-go-api/internal/dto"
	"github.com/pulselearn/pulse-go-api/internal/service"
	"github.com/pulselearn/pulse-go-api/internal/utils"
)

// GoalHandler exposes the weekly learning goal endpoints.
type GoalHandler struct {
	service service.GoalService
	logger  zerolog.Logger
}

// NewGoalHandler creates a new handler instance.
func NewGoalHandler(service service.GoalService, logger zerolog.Logger) *GoalHandler {
	return &GoalHandler{
		service: service,
		logger:  logger.With().Str("component", "goal_handler").Logger(),
	}
}

// Register attaches the goal endpoints.
func (h *GoalHandler) Register(router fiber.Router) {
	router.Get("/", h.get)
	router.Put("/", h.update)
}

func (h *GoalHandler) get(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	goal, err := h.service.Get(c.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to read weekly goal")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to fetch goal")
	}

	return utils.SendJSON(c, fiber.StatusOK, goal)
}

func (h *GoalHandler) update(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var payload dto.UpdateGoalRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	goal, err := h.service.Update(c.Context(), userID, payload)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		h.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to update weekly goal")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to update goal")
	}

	return utils.SendJSON(c, fiber.StatusOK, goal)
}
