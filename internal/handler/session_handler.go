package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/pulselearn/pulse-go-api/internal/dto"
	"github.com/pulselearn/pulse-go-api/internal/service"
	"github.com/pulselearn/pulse-go-api/internal/utils"
)

// SessionHandler exposes the study session lifecycle endpoints.
type SessionHandler struct {
	service service.SessionService
	logger  zerolog.Logger
}

// NewSessionHandler creates a new handler instance.
func NewSessionHandler(service service.SessionService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger.With().Str("component", "session_handler").Logger(),
	}
}

// Register attaches the session endpoints.
func (h *SessionHandler) Register(router fiber.Router) {
	router.Post("/", h.start)
	router.Get("/", h.list)
	router.Post("/:id/end", h.end)
	router.Post("/:id/abandon", h.abandon)
}

func (h *SessionHandler) start(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	// The request body is optional; a bare POST starts an untargeted session.
	var payload dto.StartSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	session, err := h.service.Start(c.Context(), userID, payload)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		h.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to start session")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to start session")
	}

	return utils.SendJSON(c, fiber.StatusCreated, session)
}

func (h *SessionHandler) list(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	sessions, err := h.service.List(c.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to list sessions")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to list sessions")
	}

	return utils.SendJSON(c, fiber.StatusOK, sessions)
}

func (h *SessionHandler) end(c *fiber.Ctx) error {
	return h.close(c, h.service.End, "Failed to end session")
}

func (h *SessionHandler) abandon(c *fiber.Ctx) error {
	return h.close(c, h.service.Abandon, "Failed to abandon session")
}

func (h *SessionHandler) close(c *fiber.Ctx, op func(ctx context.Context, userID, sessionID uint) (dto.SessionResponse, error), failureMessage string) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	sessionID, err := parseParamUint(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid session id")
	}

	session, err := op(c.Context(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "Session not found")
		case errors.Is(err, service.ErrSessionNotOwned):
			return utils.SendError(c, fiber.StatusForbidden, "Forbidden")
		case errors.Is(err, service.ErrSessionClosed):
			return utils.SendError(c, fiber.StatusConflict, "Session already closed")
		default:
			h.logger.Error().Err(err).Uint("session_id", sessionID).Msg("failed to close session")
			return utils.SendError(c, fiber.StatusInternalServerError, failureMessage)
		}
	}

	return utils.SendJSON(c, fiber.StatusOK, session)
}
