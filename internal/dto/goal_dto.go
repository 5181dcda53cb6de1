package dto

import "time"

// UpdateGoalRequest sets the learner's weekly study target in minutes.
// 10080 is the number of minutes in a week.
type UpdateGoalRequest struct {
	WeeklyMinutes int `json:"weekly_minutes" validate:"gte=0,lte=10080"`
}

// GoalResponse describes the stored weekly goal.
type GoalResponse struct {
	UserID        uint      `json:"user_id"`
	WeeklyMinutes int       `json:"weekly_minutes"`
	UpdatedAt     time.Time `json:"updated_at"`
}
