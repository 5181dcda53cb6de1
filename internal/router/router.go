package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pulselearn/pulse-go-api/internal/config"
	"github.com/pulselearn/pulse-go-api/internal/handler"
	"github.com/pulselearn/pulse-go-api/internal/middleware"
	"github.com/pulselearn/pulse-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AnalyticsHandler *handler.AnalyticsHandler
	SessionHandler   *handler.SessionHandler
	GoalHandler      *handler.GoalHandler
	JWTMiddleware    fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AnalyticsHandler != nil {
		analyticsGroup := app.Group("/api/analytics", jwtMiddleware, middleware.RateLimit("analytics", 30, time.Minute))
		deps.AnalyticsHandler.Register(analyticsGroup)
	}

	if deps.SessionHandler != nil {
		sessionGroup := api.Group("/sessions", jwtMiddleware)
		deps.SessionHandler.Register(sessionGroup)
	}

	if deps.GoalHandler != nil {
		goalGroup := api.Group("/goals", jwtMiddleware)
		deps.GoalHandler.Register(goalGroup)
	}
}
