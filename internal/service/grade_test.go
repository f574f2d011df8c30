package service

import "testing"

func TestGradeAnswer(t *testing.T) {
	tests := []struct {
		name      string
		user      string
		canonical string
		want      bool
	}{
		{"exact match", "Paris", "Paris", true},
		{"case insensitive", "paris", "Paris", true},
		{"surrounding whitespace", "  Paris \n", "Paris", true},
		{"both sides trimmed", " paris ", " PARIS ", true},
		{"wrong answer", "London", "Paris", false},
		{"partial answer", "Par", "Paris", false},
		{"empty submission", "", "Paris", false},
		{"whitespace only vs empty", "   ", "", true},
		{"internal whitespace matters", "New  York", "New York", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GradeAnswer(tt.user, tt.canonical); got != tt.want {
				t.Errorf("GradeAnswer(%q, %q) = %v, want %v", tt.user, tt.canonical, got, tt.want)
			}
		})
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{66.666666, 66.7},
		{33.333333, 33.3},
		{50, 50},
		{0, 0},
		{99.95, 100},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBatchAccuracy(t *testing.T) {
	if got := batchAccuracy(0, 0); got != 0 {
		t.Errorf("batchAccuracy(0, 0) = %v, want 0", got)
	}
	if got := batchAccuracy(2, 3); Round1(got) != 66.7 {
		t.Errorf("batchAccuracy(2, 3) = %v, want ~66.7", got)
	}
	if got := batchAccuracy(3, 3); got != 100 {
		t.Errorf("batchAccuracy(3, 3) = %v, want 100", got)
	}
}
