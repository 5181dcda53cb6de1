package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pulselearn/pulse-go-api/internal/models"
)

// AchievementRepository reads earned learner badges.
type AchievementRepository interface {
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Create(ctx context.Context, achievement *models.Achievement) error
}

type achievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository instantiates the repository.
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Achievement{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *achievementRepository) Create(ctx context.Context, achievement *models.Achievement) error {
	return r.db.WithContext(ctx).Create(achievement).Error
}
