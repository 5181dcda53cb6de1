package analytics

import (
	"sort"
	"time"
)

// DefaultStreakLookbackDays bounds the backward walk when computing the
// current streak. A learner active every single day for longer than this
// window is reported at the cap.
const DefaultStreakLookbackDays = 30

// Streaks pairs the current consecutive-day streak ending today with the
// longest consecutive-day streak ever observed.
type Streaks struct {
	Current int
	Longest int
}

// CalculateStreaks derives both streak values from completed-activity
// timestamps. Time of day is ignored; a streak day is any calendar day, in
// now's location, containing at least one activity.
//
// The current streak walks backward from today and stops at the first quiet
// day, or at lookbackDays whichever comes first. The longest streak scans the
// distinct activity days in ascending order and tracks the longest run of
// exactly-adjacent days. Empty input yields zero for both.
func CalculateStreaks(activityTimes []time.Time, now time.Time, lookbackDays int) Streaks {
	if len(activityTimes) == 0 {
		return Streaks{}
	}
	if lookbackDays <= 0 {
		lookbackDays = DefaultStreakLookbackDays
	}

	loc := now.Location()
	daySet := map[time.Time]struct{}{}
	for _, ts := range activityTimes {
		daySet[StartOfDay(ts.In(loc))] = struct{}{}
	}

	streaks := Streaks{}

	day := StartOfDay(now)
	for i := 0; i < lookbackDays; i++ {
		if _, ok := daySet[day]; !ok {
			break
		}
		streaks.Current++
		day = day.AddDate(0, 0, -1)
	}

	days := make([]time.Time, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 1
	streaks.Longest = 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > streaks.Longest {
			streaks.Longest = run
		}
	}

	return streaks
}
