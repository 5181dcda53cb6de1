package models

import "time"

// LessonCompletion records that a learner finished a discrete unit of content.
// Rows are written once by the course runtime and never mutated afterwards.
type LessonCompletion struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	LessonID        uint      `gorm:"not null" json:"lesson_id"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	CompletedAt     time.Time `gorm:"not null;index" json:"completed_at"`
}
