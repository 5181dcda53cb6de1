package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pulselearn/pulse-go-api/internal/dto"
	"github.com/pulselearn/pulse-go-api/internal/models"
	"github.com/pulselearn/pulse-go-api/internal/repository"
)

type stubInvalidator struct {
	calls []uint
}

func (s *stubInvalidator) InvalidateSummary(_ context.Context, userID uint) {
	s.calls = append(s.calls, userID)
}

func newSessionFixture(t *testing.T) (*gorm.DB, SessionService, *stubInvalidator, *time.Time) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StudySession{}, &models.ActivityLog{}))

	invalidator := &stubInvalidator{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewSessionService(
		repository.NewSessionRepository(db),
		repository.NewActivityLogRepository(db),
		invalidator,
		nil,
		"",
		validate,
		zerolog.Nop(),
	)

	clock := time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)
	svc.(*sessionService).now = func() time.Time { return clock }

	return db, svc, invalidator, &clock
}

func TestSessionLifecycle(t *testing.T) {
	db, svc, invalidator, clock := newSessionFixture(t)
	ctx := context.Background()
	userID := uint(5)

	started, err := svc.Start(ctx, userID, dto.StartSessionRequest{})
	require.NoError(t, err)
	require.Equal(t, models.SessionStatusInProgress, started.Status)
	require.Nil(t, started.EndTime)
	require.Empty(t, invalidator.calls, "starting a session must not touch the cache")

	// 47 minutes pass before the learner finishes.
	*clock = clock.Add(47 * time.Minute)

	ended, err := svc.End(ctx, userID, started.ID)
	require.NoError(t, err)
	require.Equal(t, models.SessionStatusCompleted, ended.Status)
	require.NotNil(t, ended.EndTime)
	require.Equal(t, 47, ended.DurationMinutes)
	require.Equal(t, []uint{userID}, invalidator.calls)

	var logs []models.ActivityLog
	require.NoError(t, db.Order("id ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	require.Equal(t, "session.started", logs[0].Action)
	require.Equal(t, "session.completed", logs[1].Action)
}

func TestSessionEndTwiceRejected(t *testing.T) {
	_, svc, _, _ := newSessionFixture(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, 5, dto.StartSessionRequest{})
	require.NoError(t, err)

	_, err = svc.End(ctx, 5, started.ID)
	require.NoError(t, err)

	_, err = svc.End(ctx, 5, started.ID)
	require.ErrorIs(t, err, ErrSessionClosed)
}

func TestSessionOwnershipEnforced(t *testing.T) {
	_, svc, _, _ := newSessionFixture(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, 5, dto.StartSessionRequest{})
	require.NoError(t, err)

	_, err = svc.End(ctx, 6, started.ID)
	require.ErrorIs(t, err, ErrSessionNotOwned)

	_, err = svc.End(ctx, 5, 9999)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionAbandonExcludedFromCompleted(t *testing.T) {
	db, svc, _, _ := newSessionFixture(t)
	ctx := context.Background()
	userID := uint(5)

	started, err := svc.Start(ctx, userID, dto.StartSessionRequest{})
	require.NoError(t, err)

	abandoned, err := svc.Abandon(ctx, userID, started.ID)
	require.NoError(t, err)
	require.Equal(t, models.SessionStatusAbandoned, abandoned.Status)

	completed, err := repository.NewSessionRepository(db).ListCompletedByUser(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, completed)
}

func TestSessionList(t *testing.T) {
	_, svc, _, _ := newSessionFixture(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, 5, dto.StartSessionRequest{})
	require.NoError(t, err)
	_, err = svc.Start(ctx, 6, dto.StartSessionRequest{})
	require.NoError(t, err)

	sessions, err := svc.List(ctx, 5)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, uint(5), sessions[0].UserID)
}
