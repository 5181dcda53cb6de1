package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pulselearn/pulse-go-api/internal/models"
)

// GoalRepository stores per-learner weekly study targets.
type GoalRepository interface {
	GetByUser(ctx context.Context, userID uint) (models.LearnerGoal, error)
	Upsert(ctx context.Context, userID uint, weeklyMinutes int) (models.LearnerGoal, error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository instantiates the repository.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) GetByUser(ctx context.Context, userID uint) (models.LearnerGoal, error) {
	var goal models.LearnerGoal
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error; err != nil {
		return models.LearnerGoal{}, err
	}

	return goal, nil
}

func (r *goalRepository) Upsert(ctx context.Context, userID uint, weeklyMinutes int) (models.LearnerGoal, error) {
	var goal models.LearnerGoal
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error
	switch {
	case err == nil:
		goal.WeeklyMinutes = weeklyMinutes
		if err := r.db.WithContext(ctx).Save(&goal).Error; err != nil {
			return models.LearnerGoal{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		goal = models.LearnerGoal{UserID: userID, WeeklyMinutes: weeklyMinutes}
		if err := r.db.WithContext(ctx).Create(&goal).Error; err != nil {
			return models.LearnerGoal{}, err
		}
	default:
		return models.LearnerGoal{}, err
	}

	return goal, nil
}
