package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/pulselearn/pulse-go-api/internal/config"
	"github.com/pulselearn/pulse-go-api/internal/database"
	"github.com/pulselearn/pulse-go-api/internal/handler"
	"github.com/pulselearn/pulse-go-api/internal/middleware"
	"github.com/pulselearn/pulse-go-api/internal/models"
	"github.com/pulselearn/pulse-go-api/internal/repository"
	"github.com/pulselearn/pulse-go-api/internal/router"
	"github.com/pulselearn/pulse-go-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.LessonCompletion{},
		&models.StudySession{},
		&models.AssignmentSubmission{},
		&models.QuizSubmission{},
		&models.Enrollment{},
		&models.LearnerGoal{},
		&models.Achievement{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	completionRepo := repository.NewCompletionRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	activityLogRepo := repository.NewActivityLogRepository(db)

	analyticsService := service.NewAnalyticsService(service.AnalyticsDeps{
		Completions:  completionRepo,
		Sessions:     sessionRepo,
		Submissions:  submissionRepo,
		Enrollments:  enrollmentRepo,
		Goals:        goalRepo,
		Achievements: achievementRepo,
	}, redisClient, cfg.AnalyticsCacheTTL, cfg.StreakLookbackDays, logger)
	sessionService := service.NewSessionService(sessionRepo, activityLogRepo, analyticsService, natsConn, cfg.SessionEventSubject, validate, logger)
	goalService := service.NewGoalService(goalRepo, analyticsService, validate, logger)

	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, logger)
	sessionHandler := handler.NewSessionHandler(sessionService, logger)
	goalHandler := handler.NewGoalHandler(goalService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AnalyticsHandler: analyticsHandler,
		SessionHandler:   sessionHandler,
		GoalHandler:      goalHandler,
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
