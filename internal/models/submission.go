package models

import "time"

const (
	// SubmissionStatusSubmitted indicates the work has been handed in but not graded.
	SubmissionStatusSubmitted = "submitted"
	// SubmissionStatusGraded indicates the work has been evaluated.
	SubmissionStatusGraded = "graded"
)

// AssignmentSubmission is a learner's hand-in for a points-based assignment.
// EarnedPoints stays nil until the submission is graded; ungraded or nil-grade
// rows are excluded from aggregation rather than treated as zero.
type AssignmentSubmission struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	AssignmentID   uint      `gorm:"not null" json:"assignment_id"`
	EarnedPoints   *float64  `json:"earned_points"`
	PossiblePoints float64   `gorm:"not null" json:"possible_points"`
	Status         string    `gorm:"size:32;not null" json:"status"`
	SubmittedAt    time.Time `gorm:"not null" json:"submitted_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsGraded reports whether the submission carries a final score.
func (s AssignmentSubmission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded && s.EarnedPoints != nil
}

// QuizSubmission is a learner's attempt at a scored quiz. Score is nil until
// the attempt has been evaluated.
type QuizSubmission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	QuizID      uint      `gorm:"not null" json:"quiz_id"`
	Score       *float64  `json:"score"`
	MaxScore    float64   `gorm:"not null" json:"max_score"`
	Status      string    `gorm:"size:32;not null" json:"status"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsGraded reports whether the quiz attempt has been evaluated.
func (q QuizSubmission) IsGraded() bool {
	return q.Status == SubmissionStatusGraded && q.Score != nil
}
