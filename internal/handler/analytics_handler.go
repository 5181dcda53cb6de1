package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/pulselearn/pulse-go-api/internal/service"
	"github.com/pulselearn/pulse-go-api/internal/utils"
)

// AnalyticsHandler exposes the learner analytics endpoint.
type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  zerolog.Logger
}

// NewAnalyticsHandler creates a new handler instance.
func NewAnalyticsHandler(service service.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With().Str("component", "analytics_handler").Logger(),
	}
}

// Register attaches the analytics endpoint.
func (h *AnalyticsHandler) Register(router fiber.Router) {
	router.Get("/:userID", h.getSummary)
}

func (h *AnalyticsHandler) getSummary(c *fiber.Ctx) error {
	subjectID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	requestedID, err := parseParamUint(c, "userID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	// Learners may only read their own analytics.
	if subjectID != requestedID {
		return utils.SendError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	summary, err := h.service.GetSummary(c.Context(), requestedID, c.Query("period"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			return utils.SendError(c, fiber.StatusBadRequest, "Invalid period")
		}
		h.logger.Error().Err(err).Uint("user_id", requestedID).Msg("failed to assemble analytics summary")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to fetch analytics")
	}

	return utils.SendJSON(c, fiber.StatusOK, summary)
}
