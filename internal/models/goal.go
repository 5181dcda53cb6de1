package models

import "time"

// LearnerGoal stores the externally configured weekly study target, in
// minutes per week, for a single learner. One row per learner.
type LearnerGoal struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	WeeklyMinutes int       `gorm:"not null" json:"weekly_minutes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
