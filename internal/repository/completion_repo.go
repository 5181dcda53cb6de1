package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pulselearn/pulse-go-api/internal/models"
)

// CompletionRepository reads lesson completion records. Completions are
// written by the course runtime; the analytics side only reads them.
type CompletionRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.LessonCompletion, error)
	Create(ctx context.Context, completion *models.LessonCompletion) error
}

type completionRepository struct {
	db *gorm.DB
}

// NewCompletionRepository instantiates a GORM-backed repository.
func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) ListByUser(ctx context.Context, userID uint) ([]models.LessonCompletion, error) {
	var completions []models.LessonCompletion
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at ASC").
		Find(&completions).Error; err != nil {
		return nil, err
	}

	return completions, nil
}

func (r *completionRepository) Create(ctx context.Context, completion *models.LessonCompletion) error {
	return r.db.WithContext(ctx).Create(completion).Error
}
