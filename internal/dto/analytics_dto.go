package dto

// AnalyticsSummary is the full payload returned by the learner analytics
// endpoint. It is assembled fresh on every request (or served from cache) and
// never persisted.
type AnalyticsSummary struct {
	StudyTime          StudyTimeSummary   `json:"studyTime"`
	Courses            CourseSummary      `json:"courses"`
	Performance        PerformanceSummary `json:"performance"`
	Streaks            StreakSummary      `json:"streaks"`
	WeeklyLearningGoal int                `json:"weeklyLearningGoal"`
	WeeklyGoalProgress GoalProgress       `json:"weeklyGoalProgress"`
	RecentActivity     []DailyActivity    `json:"recentActivity"`
}

// StudyTimeSummary carries study minutes per calendar bucket.
type StudyTimeSummary struct {
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
	Total     int `json:"total"`
}

// CourseSummary counts the learner's enrollments by status.
type CourseSummary struct {
	Completed  int64 `json:"completed"`
	InProgress int64 `json:"inProgress"`
	Total      int64 `json:"total"`
}

// PerformanceSummary carries per-kind score averages and the points-weighted
// combined score.
type PerformanceSummary struct {
	AverageQuizScore       int `json:"averageQuizScore"`
	AverageAssignmentScore int `json:"averageAssignmentScore"`
	TotalQuizzes           int `json:"totalQuizzes"`
	TotalAssignments       int `json:"totalAssignments"`
	CombinedAverageScore   int `json:"combinedAverageScore"`
}

// StreakSummary carries consecutive-day streak values and the badge count.
type StreakSummary struct {
	Current           int   `json:"current"`
	Longest           int   `json:"longest"`
	TotalAchievements int64 `json:"totalAchievements"`
}

// GoalProgress reports weekly goal attainment.
type GoalProgress struct {
	Completed  int  `json:"completed"`
	Goal       int  `json:"goal"`
	Percentage int  `json:"percentage"`
	Remaining  int  `json:"remaining"`
	IsOnTrack  bool `json:"isOnTrack"`
}

// DailyActivity is one entry of the recent-activity feed. Date is formatted
// as YYYY-MM-DD; days without activity do not appear.
type DailyActivity struct {
	Date             string `json:"date"`
	LessonsCompleted int    `json:"lessonsCompleted"`
	TimeStudied      int    `json:"timeStudied"`
}
