package service

import "time"

// NormalizeDay truncates a timestamp to local midnight. Both the streak
// logic and the daily performance rollup bucket by this value, so every
// day-granularity comparison in the codebase goes through here.
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UpdateStreak evaluates the consecutive-day streak against "now".
//
// Rules, at day granularity:
//   - never studied before: streak becomes 1
//   - already studied today: streak and last-study date are left untouched,
//     so repeated sessions within one day are no-ops here
//   - last studied yesterday: streak increments
//   - gap of two or more days: streak resets to 1
//   - last-study date in the future (clock skew): no-op
//
// Whenever the state changes, the returned last-study date is the full
// "now" timestamp, not the truncated day.
func UpdateStreak(lastStudy *time.Time, streak int, now time.Time) (int, *time.Time) {
	today := NormalizeDay(now)

	if lastStudy == nil {
		t := now
		return 1, &t
	}

	last := NormalizeDay(*lastStudy)
	if last.Equal(today) {
		return streak, lastStudy
	}
	if last.After(today) {
		return streak, lastStudy
	}

	yesterday := today.AddDate(0, 0, -1)
	t := now
	if last.Equal(yesterday) {
		return streak + 1, &t
	}
	return 1, &t
}
