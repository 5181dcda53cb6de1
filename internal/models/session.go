package models

import "time"

// StudySession tracks a single timed learning session. A row is created when
// the learner starts studying and updated exactly once when the session ends
// or is abandoned; sessions are never deleted.
type StudySession struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	CourseID        *uint      `json:"course_id"`
	StartTime       time.Time  `gorm:"not null" json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes int        `json:"duration_minutes"`
	Status          string     `gorm:"size:32;not null" json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

const (
	// SessionStatusInProgress indicates the session has started but not ended.
	SessionStatusInProgress = "in_progress"
	// SessionStatusCompleted indicates the session ended normally.
	SessionStatusCompleted = "completed"
	// SessionStatusAbandoned indicates the session was discarded without finishing.
	SessionStatusAbandoned = "abandoned"
)

// IsCompleted reports whether the session finished normally and carries an end time.
// Only completed sessions feed streak and study-time calculations.
func (s StudySession) IsCompleted() bool {
	return s.Status == SessionStatusCompleted && s.EndTime != nil
}
