package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pulselearn/pulse-go-api/internal/models"
)

// SessionFilter narrows study session queries.
type SessionFilter struct {
	UserID *uint
	Status *string
}

// SessionRepository defines data operations for study sessions.
type SessionRepository interface {
	List(ctx context.Context, filter SessionFilter) ([]models.StudySession, error)
	ListCompletedByUser(ctx context.Context, userID uint) ([]models.StudySession, error)
	GetByID(ctx context.Context, id uint) (models.StudySession, error)
	Create(ctx context.Context, session *models.StudySession) error
	Update(ctx context.Context, session *models.StudySession) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository instantiates the repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) List(ctx context.Context, filter SessionFilter) ([]models.StudySession, error) {
	query := r.db.WithContext(ctx).Model(&models.StudySession{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var sessions []models.StudySession
	if err := query.Order("start_time DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *sessionRepository) ListCompletedByUser(ctx context.Context, userID uint) ([]models.StudySession, error) {
	var sessions []models.StudySession
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", models.SessionStatusCompleted).
		Where("end_time IS NOT NULL").
		Order("end_time ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id uint) (models.StudySession, error) {
	var session models.StudySession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return models.StudySession{}, err
	}

	return session, nil
}

func (r *sessionRepository) Create(ctx context.Context, session *models.StudySession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) Update(ctx context.Context, session *models.StudySession) error {
	return r.db.WithContext(ctx).Save(session).Error
}
