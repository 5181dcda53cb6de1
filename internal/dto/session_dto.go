package dto

import "time"

// StartSessionRequest opens a new study session for the authenticated learner.
type StartSessionRequest struct {
	CourseID *uint `json:"course_id" validate:"omitempty,gt=0"`
}

// SessionResponse describes a study session on the wire.
type SessionResponse struct {
	ID              uint       `json:"id"`
	UserID          uint       `json:"user_id"`
	CourseID        *uint      `json:"course_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes int        `json:"duration_minutes"`
	Status          string     `json:"status"`
}
