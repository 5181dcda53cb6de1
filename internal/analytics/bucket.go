// Package analytics contains the pure aggregation core behind the learner
// analytics endpoint: temporal bucketing, performance aggregation, streak
// detection and weekly-goal math. Every function here is a deterministic
// transformation of already-fetched records; nothing in this package performs
// I/O or returns errors for empty inputs.
package analytics

import (
	"sort"
	"time"
)

// CompletionRecord is the projection of a finished unit of content consumed
// by the temporal bucketer.
type CompletionRecord struct {
	LessonID        uint
	CompletedAt     time.Time
	DurationMinutes int
}

// DayActivity rolls up completions for a single calendar day.
type DayActivity struct {
	Date             time.Time
	LessonsCompleted int
	MinutesStudied   int
}

// StudyTimeTotals partitions study minutes into calendar buckets relative to
// a reference instant.
type StudyTimeTotals struct {
	WeekMinutes    int
	MonthMinutes   int
	AllTimeMinutes int
	PerDay         []DayActivity
}

// StartOfWeek returns the most recent Sunday 00:00:00 on or before t, in t's
// location. Weeks start on Sunday.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// StartOfMonth returns the first instant of t's calendar month, in t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BucketStudyTime classifies completion records into this-week, this-month and
// all-time totals, and into per-day rollups for the trailing windowDays days.
//
// Week and month boundaries are inclusive of their start instant: a record
// stamped exactly on Sunday 00:00:00 counts toward the current week. The
// per-day sequence covers [now - windowDays, now], ordered oldest first, and
// contains an entry only for days with at least one record; quiet days are
// omitted rather than emitted as zeroes.
func BucketStudyTime(records []CompletionRecord, now time.Time, windowDays int) StudyTimeTotals {
	loc := now.Location()
	weekStart := StartOfWeek(now)
	monthStart := StartOfMonth(now)
	windowStart := StartOfDay(now.In(loc).AddDate(0, 0, -windowDays))

	totals := StudyTimeTotals{}
	perDay := map[time.Time]*DayActivity{}

	for _, record := range records {
		ts := record.CompletedAt.In(loc)
		totals.AllTimeMinutes += record.DurationMinutes

		if !ts.Before(weekStart) {
			totals.WeekMinutes += record.DurationMinutes
		}
		if !ts.Before(monthStart) {
			totals.MonthMinutes += record.DurationMinutes
		}

		if ts.Before(windowStart) || ts.After(now) {
			continue
		}
		day := StartOfDay(ts)
		bucket, ok := perDay[day]
		if !ok {
			bucket = &DayActivity{Date: day}
			perDay[day] = bucket
		}
		bucket.LessonsCompleted++
		bucket.MinutesStudied += record.DurationMinutes
	}

	days := make([]DayActivity, 0, len(perDay))
	for _, bucket := range perDay {
		days = append(days, *bucket)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	totals.PerDay = days

	return totals
}
