package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pulselearn/pulse-go-api/internal/models"
)

// EnrollmentCounts summarises a learner's course enrollments by status.
type EnrollmentCounts struct {
	Completed  int64
	InProgress int64
	Total      int64
}

// EnrollmentRepository reads course enrollments.
type EnrollmentRepository interface {
	CountsByUser(ctx context.Context, userID uint) (EnrollmentCounts, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository instantiates the repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) CountsByUser(ctx context.Context, userID uint) (EnrollmentCounts, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Enrollment{}).Where("user_id = ?", userID)
	}

	counts := EnrollmentCounts{}
	if err := base().Count(&counts.Total).Error; err != nil {
		return EnrollmentCounts{}, err
	}
	if err := base().Where("status = ?", models.EnrollmentStatusCompleted).Count(&counts.Completed).Error; err != nil {
		return EnrollmentCounts{}, err
	}
	if err := base().Where("status = ?", models.EnrollmentStatusInProgress).Count(&counts.InProgress).Error; err != nil {
		return EnrollmentCounts{}, err
	}

	return counts, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}
