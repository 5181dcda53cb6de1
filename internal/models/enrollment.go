package models

import "time"

const (
	// EnrollmentStatusInProgress indicates the learner is actively working through the course.
	EnrollmentStatusInProgress = "in_progress"
	// EnrollmentStatusCompleted indicates the learner finished every unit in the course.
	EnrollmentStatusCompleted = "completed"
)

// Enrollment links a learner to a course they are taking.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CourseID  uint      `gorm:"not null" json:"course_id"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
