package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pulselearn/pulse-go-api/internal/analytics"
	"github.com/pulselearn/pulse-go-api/internal/dto"
	"github.com/pulselearn/pulse-go-api/internal/models"
	"github.com/pulselearn/pulse-go-api/internal/repository"
)

// Periods accepted by the analytics endpoint. The period selects the
// recent-activity window; week/month/all-time totals are always present.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// ErrInvalidPeriod is returned when the requested period is not recognised.
var ErrInvalidPeriod = errors.New("invalid analytics period")

// AnalyticsService assembles the learner analytics summary on demand. The
// summary is a computed projection over raw records, not a maintained
// aggregate table; the cache below is a read-through layer with the same
// computation as its fill function.
type AnalyticsService interface {
	GetSummary(ctx context.Context, userID uint, period string) (dto.AnalyticsSummary, error)
	InvalidateSummary(ctx context.Context, userID uint)
}

type analyticsService struct {
	completions  repository.CompletionRepository
	sessions     repository.SessionRepository
	submissions  repository.SubmissionRepository
	enrollments  repository.EnrollmentRepository
	goals        repository.GoalRepository
	achievements repository.AchievementRepository
	cache        *redis.Client
	cacheTTL     time.Duration
	lookbackDays int
	logger       zerolog.Logger
	now          func() time.Time
}

// AnalyticsDeps groups the repositories the analytics service reads from.
type AnalyticsDeps struct {
	Completions  repository.CompletionRepository
	Sessions     repository.SessionRepository
	Submissions  repository.SubmissionRepository
	Enrollments  repository.EnrollmentRepository
	Goals        repository.GoalRepository
	Achievements repository.AchievementRepository
}

// NewAnalyticsService constructs the summary aggregator.
func NewAnalyticsService(deps AnalyticsDeps, cache *redis.Client, ttl time.Duration, lookbackDays int, logger zerolog.Logger) AnalyticsService {
	if lookbackDays <= 0 {
		lookbackDays = analytics.DefaultStreakLookbackDays
	}

	return &analyticsService{
		completions:  deps.Completions,
		sessions:     deps.Sessions,
		submissions:  deps.Submissions,
		enrollments:  deps.Enrollments,
		goals:        deps.Goals,
		achievements: deps.Achievements,
		cache:        cache,
		cacheTTL:     ttl,
		lookbackDays: lookbackDays,
		logger:       logger.With().Str("component", "analytics_service").Logger(),
		now:          time.Now,
	}
}

func activityWindowDays(period string) (int, error) {
	switch period {
	case "", PeriodWeek:
		return 7, nil
	case PeriodMonth:
		return 30, nil
	default:
		return 0, ErrInvalidPeriod
	}
}

func (s *analyticsService) GetSummary(ctx context.Context, userID uint, period string) (dto.AnalyticsSummary, error) {
	windowDays, err := activityWindowDays(period)
	if err != nil {
		return dto.AnalyticsSummary{}, err
	}

	tracer := otel.Tracer("github.com/pulselearn/pulse-go-api/internal/service/analytics")
	ctx, span := tracer.Start(ctx, "analytics.summary")
	span.SetAttributes(
		attribute.Int64("analytics.user_id", int64(userID)),
		attribute.Int("analytics.window_days", windowDays),
	)
	defer span.End()

	cacheKey := summaryCacheKey(userID, windowDays)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var summary dto.AnalyticsSummary
			if unmarshalErr := json.Unmarshal([]byte(cached), &summary); unmarshalErr == nil {
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				s.logger.Debug().Uint("user_id", userID).Msg("analytics cache hit")
				return summary, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
			span.RecordError(err)
		}
	}

	inputs, err := s.fetchInputs(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch_inputs_failed")
		return dto.AnalyticsSummary{}, err
	}

	summary := s.buildSummary(inputs, windowDays)
	span.SetAttributes(
		attribute.Int("analytics.completion_count", len(inputs.completions)),
		attribute.Int("analytics.session_count", len(inputs.sessions)),
	)

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store analytics cache")
				span.RecordError(err)
			}
		}
	}

	return summary, nil
}

// InvalidateSummary drops any cached summaries for the learner. Called by the
// write paths (session end, goal update) so the next read recomputes.
func (s *analyticsService) InvalidateSummary(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}

	keys := []string{summaryCacheKey(userID, 7), summaryCacheKey(userID, 30)}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Msg("failed to invalidate analytics cache")
	}
}

func summaryCacheKey(userID uint, windowDays int) string {
	return fmt.Sprintf("analytics:user:%d:window:%d", userID, windowDays)
}

type summaryInputs struct {
	completions  []models.LessonCompletion
	sessions     []models.StudySession
	assignments  []models.AssignmentSubmission
	quizzes      []models.QuizSubmission
	enrollments  repository.EnrollmentCounts
	goal         models.LearnerGoal
	achievements int64
}

// fetchInputs reads the independent input collections in parallel. All reads
// are side-effect free, so partial failure simply aborts the whole summary.
func (s *analyticsService) fetchInputs(ctx context.Context, userID uint) (summaryInputs, error) {
	var inputs summaryInputs

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		completions, err := s.completions.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("list completions: %w", err)
		}
		inputs.completions = completions
		return nil
	})

	g.Go(func() error {
		sessions, err := s.sessions.ListCompletedByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		inputs.sessions = sessions
		return nil
	})

	g.Go(func() error {
		assignments, err := s.submissions.ListGradedAssignments(gctx, userID)
		if err != nil {
			return fmt.Errorf("list assignment submissions: %w", err)
		}
		inputs.assignments = assignments
		return nil
	})

	g.Go(func() error {
		quizzes, err := s.submissions.ListGradedQuizzes(gctx, userID)
		if err != nil {
			return fmt.Errorf("list quiz submissions: %w", err)
		}
		inputs.quizzes = quizzes
		return nil
	})

	g.Go(func() error {
		counts, err := s.enrollments.CountsByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("count enrollments: %w", err)
		}
		inputs.enrollments = counts
		return nil
	})

	g.Go(func() error {
		count, err := s.achievements.CountByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("count achievements: %w", err)
		}
		inputs.achievements = count
		return nil
	})

	g.Go(func() error {
		goal, err := s.goals.GetByUser(gctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// No configured goal is a normal state for a new learner.
				return nil
			}
			return fmt.Errorf("get weekly goal: %w", err)
		}
		inputs.goal = goal
		return nil
	})

	if err := g.Wait(); err != nil {
		return summaryInputs{}, err
	}

	return inputs, nil
}

func (s *analyticsService) buildSummary(inputs summaryInputs, windowDays int) dto.AnalyticsSummary {
	now := s.now()

	// Lesson completions and completed study sessions both count as finished
	// units of content for time bucketing.
	records := make([]analytics.CompletionRecord, 0, len(inputs.completions)+len(inputs.sessions))
	for _, completion := range inputs.completions {
		records = append(records, analytics.CompletionRecord{
			LessonID:        completion.LessonID,
			CompletedAt:     completion.CompletedAt,
			DurationMinutes: completion.DurationMinutes,
		})
	}
	sessionEnds := make([]time.Time, 0, len(inputs.sessions))
	for _, session := range inputs.sessions {
		if !session.IsCompleted() {
			continue
		}
		records = append(records, analytics.CompletionRecord{
			CompletedAt:     *session.EndTime,
			DurationMinutes: session.DurationMinutes,
		})
		sessionEnds = append(sessionEnds, *session.EndTime)
	}

	totals := analytics.BucketStudyTime(records, now, windowDays)
	streaks := analytics.CalculateStreaks(sessionEnds, now, s.lookbackDays)
	performance := analytics.AggregatePerformance(
		assignmentScores(inputs.assignments),
		quizScores(inputs.quizzes),
	)
	goalProgress := analytics.EvaluateWeeklyGoal(totals.WeekMinutes, inputs.goal.WeeklyMinutes)

	recent := make([]dto.DailyActivity, 0, len(totals.PerDay))
	for _, day := range totals.PerDay {
		recent = append(recent, dto.DailyActivity{
			Date:             day.Date.Format("2006-01-02"),
			LessonsCompleted: day.LessonsCompleted,
			TimeStudied:      day.MinutesStudied,
		})
	}

	return dto.AnalyticsSummary{
		StudyTime: dto.StudyTimeSummary{
			ThisWeek:  totals.WeekMinutes,
			ThisMonth: totals.MonthMinutes,
			Total:     totals.AllTimeMinutes,
		},
		Courses: dto.CourseSummary{
			Completed:  inputs.enrollments.Completed,
			InProgress: inputs.enrollments.InProgress,
			Total:      inputs.enrollments.Total,
		},
		Performance: dto.PerformanceSummary{
			AverageQuizScore:       performance.AverageQuizScore,
			AverageAssignmentScore: performance.AverageAssignmentScore,
			TotalQuizzes:           performance.TotalQuizzes,
			TotalAssignments:       performance.TotalAssignments,
			CombinedAverageScore:   performance.CombinedAverageScore,
		},
		Streaks: dto.StreakSummary{
			Current:           streaks.Current,
			Longest:           streaks.Longest,
			TotalAchievements: inputs.achievements,
		},
		WeeklyLearningGoal: inputs.goal.WeeklyMinutes,
		WeeklyGoalProgress: dto.GoalProgress{
			Completed:  goalProgress.CompletedMinutes,
			Goal:       goalProgress.GoalMinutes,
			Percentage: goalProgress.Percentage,
			Remaining:  goalProgress.RemainingMinutes,
			IsOnTrack:  goalProgress.OnTrack,
		},
		RecentActivity: recent,
	}
}

func assignmentScores(submissions []models.AssignmentSubmission) []analytics.ScoreRecord {
	records := make([]analytics.ScoreRecord, 0, len(submissions))
	for _, submission := range submissions {
		if !submission.IsGraded() {
			continue
		}
		records = append(records, analytics.ScoreRecord{
			Earned:    *submission.EarnedPoints,
			Possible:  submission.PossiblePoints,
			Timestamp: submission.SubmittedAt,
		})
	}
	return records
}

func quizScores(submissions []models.QuizSubmission) []analytics.ScoreRecord {
	records := make([]analytics.ScoreRecord, 0, len(submissions))
	for _, submission := range submissions {
		if !submission.IsGraded() {
			continue
		}
		records = append(records, analytics.ScoreRecord{
			Earned:    *submission.Score,
			Possible:  submission.MaxScore,
			Timestamp: submission.SubmittedAt,
		})
	}
	return records
}
