package analytics

// GoalProgress describes how far a learner is toward their weekly study
// target.
type GoalProgress struct {
	CompletedMinutes int
	GoalMinutes      int
	Percentage       int
	RemainingMinutes int
	OnTrack          bool
}

// EvaluateWeeklyGoal combines this week's completed study minutes with the
// configured weekly target. Percentage is clamped at 100 even when the
// learner exceeds the goal. A zero (or unset) goal is treated as already
// on track with nothing remaining.
func EvaluateWeeklyGoal(completedMinutes, goalMinutes int) GoalProgress {
	progress := GoalProgress{
		CompletedMinutes: completedMinutes,
		GoalMinutes:      goalMinutes,
	}

	if goalMinutes <= 0 {
		progress.Percentage = 100
		progress.OnTrack = true
		return progress
	}

	percentage := roundPercent(100 * float64(completedMinutes) / float64(goalMinutes))
	if percentage > 100 {
		percentage = 100
	}
	progress.Percentage = percentage

	if remaining := goalMinutes - completedMinutes; remaining > 0 {
		progress.RemainingMinutes = remaining
	}
	progress.OnTrack = completedMinutes >= goalMinutes

	return progress
}
