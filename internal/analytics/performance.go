package analytics

import (
	"math"
	"time"
)

// ScoreRecord is the common projection of a graded submission: points earned
// out of points possible at a given time. Assignment and quiz submissions
// both reduce to this shape so the aggregation logic exists once.
type ScoreRecord struct {
	Earned    float64
	Possible  float64
	Timestamp time.Time
}

// PerformanceSummary holds per-kind score averages and the points-weighted
// combined score across both kinds, all as whole percentages.
type PerformanceSummary struct {
	AverageAssignmentScore int
	AverageQuizScore       int
	CombinedAverageScore   int
	TotalAssignments       int
	TotalQuizzes           int
}

// AggregatePerformance computes average percentage scores per submission kind
// and one combined percentage weighted by points, not by record count: a
// 200-point assignment pulls the combined score proportionally harder than a
// 10-point quiz. Records with a non-positive Possible value carry zero weight.
// Empty inputs produce all-zero output.
//
// Callers are expected to pass only graded submissions; negative point values
// are a data-integrity bug upstream, not a condition handled here.
func AggregatePerformance(assignments, quizzes []ScoreRecord) PerformanceSummary {
	summary := PerformanceSummary{
		AverageAssignmentScore: averagePercentage(assignments),
		AverageQuizScore:       averagePercentage(quizzes),
		TotalAssignments:       len(assignments),
		TotalQuizzes:           len(quizzes),
	}

	var earnedSum, possibleSum float64
	for _, record := range assignments {
		if record.Possible > 0 {
			earnedSum += record.Earned
			possibleSum += record.Possible
		}
	}
	for _, record := range quizzes {
		if record.Possible > 0 {
			earnedSum += record.Earned
			possibleSum += record.Possible
		}
	}

	if possibleSum > 0 {
		summary.CombinedAverageScore = roundPercent(100 * earnedSum / possibleSum)
	}

	return summary
}

func averagePercentage(records []ScoreRecord) int {
	var sum float64
	var count int
	for _, record := range records {
		if record.Possible > 0 {
			sum += 100 * record.Earned / record.Possible
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return roundPercent(sum / float64(count))
}

func roundPercent(v float64) int {
	return int(math.Round(v))
}
