package service

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeDay(t *testing.T) {
	ts := time.Date(2026, time.March, 10, 23, 59, 58, 123, time.UTC)
	got := NormalizeDay(ts)
	want := day(2026, time.March, 10)
	if !got.Equal(want) {
		t.Fatalf("NormalizeDay(%v) = %v, want %v", ts, got, want)
	}
	if got.Location() != ts.Location() {
		t.Fatalf("NormalizeDay changed location: %v", got.Location())
	}
}

func TestUpdateStreak(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	threeDaysAgo := now.AddDate(0, 0, -3)
	earlierToday := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name        string
		lastStudy   *time.Time
		streak      int
		wantStreak  int
		wantUpdated bool
	}{
		{"never studied", nil, 0, 1, true},
		{"studied earlier today", &earlierToday, 4, 4, false},
		{"studied yesterday", &yesterday, 4, 5, true},
		{"gap of three days", &threeDaysAgo, 9, 1, true},
		{"last study in the future", &tomorrow, 4, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStreak, gotLast := UpdateStreak(tt.lastStudy, tt.streak, now)
			if gotStreak != tt.wantStreak {
				t.Errorf("streak = %d, want %d", gotStreak, tt.wantStreak)
			}
			if tt.wantUpdated {
				if gotLast == nil || !gotLast.Equal(now) {
					t.Errorf("lastStudy = %v, want %v", gotLast, now)
				}
			} else if gotLast != tt.lastStudy {
				t.Errorf("lastStudy changed on a no-op: %v", gotLast)
			}
		})
	}
}

func TestUpdateStreakRepeatedSameDay(t *testing.T) {
	morning := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.March, 10, 22, 0, 0, 0, time.UTC)

	streak, last := UpdateStreak(nil, 0, morning)
	if streak != 1 {
		t.Fatalf("first session streak = %d, want 1", streak)
	}
	streak, last = UpdateStreak(last, streak, evening)
	if streak != 1 {
		t.Fatalf("second same-day session streak = %d, want 1", streak)
	}
	if !last.Equal(morning) {
		t.Fatalf("same-day session moved lastStudy to %v", last)
	}
}
