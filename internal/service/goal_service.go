package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pulselearn/pulse-go-api/internal/dto"
	"github.com/pulselearn/pulse-go-api/internal/models"
	"github.com/pulselearn/pulse-go-api/internal/repository"
)

// GoalService reads and updates the learner's weekly study target. The
// target is configured here and consumed by the analytics assembly; a learner
// with no stored goal reads back zero minutes.
type GoalService interface {
	Get(ctx context.Context, userID uint) (dto.GoalResponse, error)
	Update(ctx context.Context, userID uint, payload dto.UpdateGoalRequest) (dto.GoalResponse, error)
}

type goalService struct {
	goals       repository.GoalRepository
	invalidator SummaryInvalidator
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewGoalService constructs the goal service.
func NewGoalService(goals repository.GoalRepository, invalidator SummaryInvalidator, validate *validator.Validate, logger zerolog.Logger) GoalService {
	return &goalService{
		goals:       goals,
		invalidator: invalidator,
		validator:   validate,
		logger:      logger.With().Str("component", "goal_service").Logger(),
	}
}

func (s *goalService) Get(ctx context.Context, userID uint) (dto.GoalResponse, error) {
	goal, err := s.goals.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GoalResponse{UserID: userID}, nil
		}
		return dto.GoalResponse{}, err
	}

	return goalResponse(goal), nil
}

func (s *goalService) Update(ctx context.Context, userID uint, payload dto.UpdateGoalRequest) (dto.GoalResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GoalResponse{}, err
	}

	goal, err := s.goals.Upsert(ctx, userID, payload.WeeklyMinutes)
	if err != nil {
		return dto.GoalResponse{}, err
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateSummary(ctx, userID)
	}

	return goalResponse(goal), nil
}

func goalResponse(goal models.LearnerGoal) dto.GoalResponse {
	return dto.GoalResponse{
		UserID:        goal.UserID,
		WeeklyMinutes: goal.WeeklyMinutes,
		UpdatedAt:     goal.UpdatedAt,
	}
}
