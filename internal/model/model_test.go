package model

import "testing"

func TestCategoryAccuracy(t *testing.T) {
	c := Category{}
	if got := c.Accuracy(); got != 0 {
		t.Errorf("empty category accuracy = %v, want 0", got)
	}

	c = Category{TotalCorrect: 3, TotalIncorrect: 1}
	if got := c.Accuracy(); got != 75 {
		t.Errorf("accuracy = %v, want 75", got)
	}
}

func TestFlashcardAccuracyAndErrorRate(t *testing.T) {
	f := Flashcard{}
	if f.Accuracy() != 0 || f.ErrorRate() != 0 {
		t.Error("unattempted flashcard rates must be 0")
	}

	f = Flashcard{TotalAttempts: 4, CorrectAttempts: 3, IncorrectAttempts: 1}
	if got := f.Accuracy(); got != 75 {
		t.Errorf("accuracy = %v, want 75", got)
	}
	if got := f.ErrorRate(); got != 25 {
		t.Errorf("error rate = %v, want 25", got)
	}
}
