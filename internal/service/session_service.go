package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pulselearn/pulse-go-api/internal/dto"
	"github.com/pulselearn/pulse-go-api/internal/models"
	"github.com/pulselearn/pulse-go-api/internal/repository"
)

var (
	// ErrSessionNotFound indicates the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionNotOwned indicates the session belongs to another learner.
	ErrSessionNotOwned = errors.New("session does not belong to caller")
	// ErrSessionClosed indicates the session has already ended or been abandoned.
	ErrSessionClosed = errors.New("session already closed")
)

// SummaryInvalidator drops cached analytics for a learner after a write that
// changes their inputs.
type SummaryInvalidator interface {
	InvalidateSummary(ctx context.Context, userID uint)
}

// SessionService manages the study session lifecycle: started once, closed
// once (completed or abandoned), never deleted.
type SessionService interface {
	Start(ctx context.Context, userID uint, payload dto.StartSessionRequest) (dto.SessionResponse, error)
	End(ctx context.Context, userID, sessionID uint) (dto.SessionResponse, error)
	Abandon(ctx context.Context, userID, sessionID uint) (dto.SessionResponse, error)
	List(ctx context.Context, userID uint) ([]dto.SessionResponse, error)
}

// SessionCompletedEvent is published on the bus when a session ends normally.
type SessionCompletedEvent struct {
	SessionID       uint      `json:"session_id"`
	UserID          uint      `json:"user_id"`
	DurationMinutes int       `json:"duration_minutes"`
	EndedAt         time.Time `json:"ended_at"`
}

type sessionService struct {
	sessions    repository.SessionRepository
	activityLog repository.ActivityLogRepository
	invalidator SummaryInvalidator
	nats        *nats.Conn
	natsSubject string
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSessionService constructs the session lifecycle service. The NATS
// connection may be nil; event publishing is then skipped.
func NewSessionService(sessions repository.SessionRepository, activityLog repository.ActivityLogRepository, invalidator SummaryInvalidator, natsConn *nats.Conn, natsSubject string, validate *validator.Validate, logger zerolog.Logger) SessionService {
	if natsSubject == "" {
		natsSubject = "pulse.sessions.completed"
	}

	return &sessionService{
		sessions:    sessions,
		activityLog: activityLog,
		invalidator: invalidator,
		nats:        natsConn,
		natsSubject: natsSubject,
		validator:   validate,
		logger:      logger.With().Str("component", "session_service").Logger(),
		now:         time.Now,
	}
}

func (s *sessionService) Start(ctx context.Context, userID uint, payload dto.StartSessionRequest) (dto.SessionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SessionResponse{}, err
	}

	session := models.StudySession{
		UserID:    userID,
		CourseID:  payload.CourseID,
		StartTime: s.now(),
		Status:    models.SessionStatusInProgress,
	}
	if err := s.sessions.Create(ctx, &session); err != nil {
		return dto.SessionResponse{}, err
	}

	s.recordActivity(ctx, userID, "session.started", session.ID, nil)

	return sessionResponse(session), nil
}

func (s *sessionService) End(ctx context.Context, userID, sessionID uint) (dto.SessionResponse, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	end := s.now()
	duration := int(end.Sub(session.StartTime).Minutes())
	if duration < 0 {
		duration = 0
	}

	session.EndTime = &end
	session.DurationMinutes = duration
	session.Status = models.SessionStatusCompleted
	if err := s.sessions.Update(ctx, &session); err != nil {
		return dto.SessionResponse{}, err
	}

	s.recordActivity(ctx, userID, "session.completed", session.ID, datatypes.JSONMap{
		"duration_minutes": duration,
	})
	s.publishCompleted(session)

	if s.invalidator != nil {
		s.invalidator.InvalidateSummary(ctx, userID)
	}

	return sessionResponse(session), nil
}

func (s *sessionService) Abandon(ctx context.Context, userID, sessionID uint) (dto.SessionResponse, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	end := s.now()
	session.EndTime = &end
	session.Status = models.SessionStatusAbandoned
	if err := s.sessions.Update(ctx, &session); err != nil {
		return dto.SessionResponse{}, err
	}

	s.recordActivity(ctx, userID, "session.abandoned", session.ID, nil)

	return sessionResponse(session), nil
}

func (s *sessionService) List(ctx context.Context, userID uint) ([]dto.SessionResponse, error) {
	sessions, err := s.sessions.List(ctx, repository.SessionFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, sessionResponse(session))
	}

	return responses, nil
}

func (s *sessionService) loadOwned(ctx context.Context, userID, sessionID uint) (models.StudySession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StudySession{}, ErrSessionNotFound
		}
		return models.StudySession{}, err
	}

	if session.UserID != userID {
		return models.StudySession{}, ErrSessionNotOwned
	}

	if session.Status != models.SessionStatusInProgress {
		return models.StudySession{}, ErrSessionClosed
	}

	return session, nil
}

func (s *sessionService) recordActivity(ctx context.Context, userID uint, action string, sessionID uint, metadata datatypes.JSONMap) {
	entry := models.ActivityLog{
		UserID:     userID,
		Action:     action,
		EntityType: "study_session",
		EntityID:   &sessionID,
		Metadata:   metadata,
	}
	if err := s.activityLog.Create(ctx, &entry); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record activity log entry")
	}
}

func (s *sessionService) publishCompleted(session models.StudySession) {
	if s.nats == nil || session.EndTime == nil {
		return
	}

	event := SessionCompletedEvent{
		SessionID:       session.ID,
		UserID:          session.UserID,
		DurationMinutes: session.DurationMinutes,
		EndedAt:         *session.EndTime,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err := s.nats.Publish(s.natsSubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish session completed event")
	}
}

func sessionResponse(session models.StudySession) dto.SessionResponse {
	return dto.SessionResponse{
		ID:              session.ID,
		UserID:          session.UserID,
		CourseID:        session.CourseID,
		StartTime:       session.StartTime,
		EndTime:         session.EndTime,
		DurationMinutes: session.DurationMinutes,
		Status:          session.Status,
	}
}
