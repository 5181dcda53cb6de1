package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBucketStudyTimeEmptyInput(t *testing.T) {
	now := time.Date(2024, time.March, 13, 15, 0, 0, 0, time.UTC)

	totals := BucketStudyTime(nil, now, 7)

	require.Zero(t, totals.WeekMinutes)
	require.Zero(t, totals.MonthMinutes)
	require.Zero(t, totals.AllTimeMinutes)
	require.Empty(t, totals.PerDay)
}

func TestBucketStudyTimeWeekBoundaryInclusive(t *testing.T) {
	// Wednesday; the week started Sunday March 10 00:00:00.
	now := time.Date(2024, time.March, 13, 15, 0, 0, 0, time.UTC)
	weekStart := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	records := []CompletionRecord{
		{LessonID: 1, CompletedAt: weekStart, DurationMinutes: 30},
		{LessonID: 2, CompletedAt: weekStart.Add(-time.Second), DurationMinutes: 45},
	}

	totals := BucketStudyTime(records, now, 7)

	require.Equal(t, 30, totals.WeekMinutes)
	require.Equal(t, 75, totals.MonthMinutes)
	require.Equal(t, 75, totals.AllTimeMinutes)
}

func TestBucketStudyTimeMonthBoundary(t *testing.T) {
	now := time.Date(2024, time.March, 13, 15, 0, 0, 0, time.UTC)

	records := []CompletionRecord{
		{LessonID: 1, CompletedAt: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), DurationMinutes: 10},
		{LessonID: 2, CompletedAt: time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), DurationMinutes: 20},
	}

	totals := BucketStudyTime(records, now, 7)

	require.Equal(t, 10, totals.MonthMinutes)
	require.Equal(t, 30, totals.AllTimeMinutes)
}

func TestBucketStudyTimePerDayOmitsQuietDays(t *testing.T) {
	now := time.Date(2024, time.March, 13, 15, 0, 0, 0, time.UTC)

	records := []CompletionRecord{
		{LessonID: 1, CompletedAt: now.AddDate(0, 0, -1), DurationMinutes: 25},
		{LessonID: 2, CompletedAt: now.AddDate(0, 0, -1).Add(time.Hour), DurationMinutes: 15},
		{LessonID: 3, CompletedAt: now.AddDate(0, 0, -4), DurationMinutes: 40},
		// Outside the 7-day window; still counts toward the totals.
		{LessonID: 4, CompletedAt: now.AddDate(0, 0, -20), DurationMinutes: 60},
	}

	totals := BucketStudyTime(records, now, 7)

	require.Len(t, totals.PerDay, 2)
	require.True(t, totals.PerDay[0].Date.Before(totals.PerDay[1].Date), "per-day feed must be oldest first")

	require.Equal(t, 1, totals.PerDay[0].LessonsCompleted)
	require.Equal(t, 40, totals.PerDay[0].MinutesStudied)
	require.Equal(t, 2, totals.PerDay[1].LessonsCompleted)
	require.Equal(t, 40, totals.PerDay[1].MinutesStudied)

	require.Equal(t, 140, totals.AllTimeMinutes)
}

func TestBucketStudyTimeDeterministic(t *testing.T) {
	now := time.Date(2024, time.March, 13, 15, 0, 0, 0, time.UTC)
	records := []CompletionRecord{
		{LessonID: 1, CompletedAt: now.AddDate(0, 0, -2), DurationMinutes: 30},
		{LessonID: 2, CompletedAt: now.AddDate(0, 0, -6), DurationMinutes: 50},
	}

	first := BucketStudyTime(records, now, 7)
	second := BucketStudyTime(records, now, 7)

	require.Equal(t, first, second)
}

func TestStartOfWeekSundayConvention(t *testing.T) {
	// A Sunday maps to itself at midnight.
	sunday := time.Date(2024, time.March, 10, 18, 30, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))

	// A Saturday maps back six days.
	saturday := time.Date(2024, time.March, 9, 2, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), StartOfWeek(saturday))
}
