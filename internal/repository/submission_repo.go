package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pulselearn/pulse-go-api/internal/models"
)

// SubmissionRepository reads graded learner submissions of both kinds.
// Filtering to graded status happens here so the aggregation core never sees
// ungraded rows.
type SubmissionRepository interface {
	ListGradedAssignments(ctx context.Context, userID uint) ([]models.AssignmentSubmission, error)
	ListGradedQuizzes(ctx context.Context, userID uint) ([]models.QuizSubmission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) ListGradedAssignments(ctx context.Context, userID uint) ([]models.AssignmentSubmission, error) {
	var submissions []models.AssignmentSubmission
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", models.SubmissionStatusGraded).
		Where("earned_points IS NOT NULL").
		Order("submitted_at ASC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) ListGradedQuizzes(ctx context.Context, userID uint) ([]models.QuizSubmission, error) {
	var submissions []models.QuizSubmission
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", models.SubmissionStatusGraded).
		Where("score IS NOT NULL").
		Order("submitted_at ASC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}
