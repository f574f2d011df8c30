package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"memneo-backend/internal/model"
	"memneo-backend/internal/repository"
)

// ---- fakes over the repository interfaces ----

type fakeUserRepo struct {
	users map[uint]*model.User
}

func (f *fakeUserRepo) GetUserByID(userID uint) (*model.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u := *user
	return &u, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) CreateUser(user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateUser(user *model.User) error {
	u := *user
	f.users[user.ID] = &u
	return nil
}

func (f *fakeUserRepo) GetTopByAccuracy(limit int) ([]model.User, error) { return nil, nil }
func (f *fakeUserRepo) CountUsers() (int64, error)                      { return int64(len(f.users)), nil }
func (f *fakeUserRepo) AddFavorite(userID, flashcardID uint) error      { return nil }
func (f *fakeUserRepo) RemoveFavorite(userID, flashcardID uint) error   { return nil }
func (f *fakeUserRepo) GetFavorites(userID uint) ([]model.Flashcard, error) {
	return nil, nil
}
func (f *fakeUserRepo) IsFavorite(userID, flashcardID uint) (bool, error) { return false, nil }

type fakeFlashcardRepo struct {
	cards map[uint]*model.Flashcard
}

func (f *fakeFlashcardRepo) GetByID(flashcardID uint) (*model.Flashcard, error) {
	card, ok := f.cards[flashcardID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *card
	return &c, nil
}

func (f *fakeFlashcardRepo) IncrementAttempt(flashcardID uint, correct bool) error {
	card, ok := f.cards[flashcardID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	card.TotalAttempts++
	if correct {
		card.CorrectAttempts++
	} else {
		card.IncorrectAttempts++
	}
	return nil
}

func (f *fakeFlashcardRepo) List(categoryID *uint, difficulty string) ([]model.Flashcard, error) {
	return nil, nil
}
func (f *fakeFlashcardRepo) ListByCategory(categoryID uint, difficulty string, offset, limit int) ([]model.Flashcard, int64, error) {
	return nil, 0, nil
}
func (f *fakeFlashcardRepo) Create(flashcard *model.Flashcard) error    { return nil }
func (f *fakeFlashcardRepo) Update(flashcard *model.Flashcard) error    { return nil }
func (f *fakeFlashcardRepo) Delete(flashcardID uint) error              { return nil }
func (f *fakeFlashcardRepo) MostMissed(limit int) ([]model.Flashcard, error) {
	return nil, nil
}
func (f *fakeFlashcardRepo) Count() (int64, error)                  { return 0, nil }
func (f *fakeFlashcardRepo) CountByCreator(userID uint) (int64, error) { return 0, nil }

type fakeCategoryRepo struct {
	categories map[uint]*model.Category
}

func (f *fakeCategoryRepo) IncrementAnswer(categoryID uint, correct bool) error {
	category, ok := f.categories[categoryID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if correct {
		category.TotalCorrect++
	} else {
		category.TotalIncorrect++
	}
	return nil
}

func (f *fakeCategoryRepo) GetAll() ([]model.Category, error) { return nil, nil }
func (f *fakeCategoryRepo) GetByID(categoryID uint) (*model.Category, error) {
	category, ok := f.categories[categoryID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}
func (f *fakeCategoryRepo) GetByName(name string) (*model.Category, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCategoryRepo) Create(category *model.Category) error { return nil }
func (f *fakeCategoryRepo) Update(category *model.Category) error { return nil }
func (f *fakeCategoryRepo) Delete(categoryID uint) error          { return nil }
func (f *fakeCategoryRepo) RankedByCorrect() ([]model.Category, error) {
	return nil, nil
}
func (f *fakeCategoryRepo) CountFlashcards(categoryID uint) (int64, error) { return 0, nil }
func (f *fakeCategoryRepo) Count() (int64, error)                          { return 0, nil }

type fakeSessionRepo struct {
	created    []*model.StudySession
	failCreate bool
}

func (f *fakeSessionRepo) Create(session *model.StudySession) error {
	if f.failCreate {
		return errors.New("insert failed")
	}
	session.ID = uint(len(f.created) + 1)
	f.created = append(f.created, session)
	return nil
}

func (f *fakeSessionRepo) GetBySessionID(sessionID string) (*model.StudySession, error) {
	for _, session := range f.created {
		if session.SessionID == sessionID {
			return session, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSessionRepo) GetByUser(userID uint, offset, limit int) ([]model.StudySession, int64, error) {
	var out []model.StudySession
	for _, session := range f.created {
		if session.UserID == userID {
			out = append(out, *session)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeSessionRepo) Delete(id uint) error                      { return nil }
func (f *fakeSessionRepo) CountSince(since time.Time) (int64, error) { return 0, nil }
func (f *fakeSessionRepo) CountByUserSince(userID uint, since time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeSessionRepo) StatsByUserSince(userID uint, since time.Time) (*repository.SessionStats, error) {
	return &repository.SessionStats{}, nil
}
func (f *fakeSessionRepo) AvgAccuracy(userID *uint) (float64, int64, error) { return 0, 0, nil }

type fakePerformanceRepo struct {
	rows map[string]*model.Performance
}

func perfKey(userID uint, date time.Time) string {
	return fmt.Sprintf("%d/%s", userID, date.Format("2006-01-02"))
}

func (f *fakePerformanceRepo) GetByUserAndDate(userID uint, date time.Time) (*model.Performance, error) {
	row, ok := f.rows[perfKey(userID, date)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r := *row
	return &r, nil
}

func (f *fakePerformanceRepo) Create(performance *model.Performance) error {
	f.rows[perfKey(performance.UserID, performance.Date)] = performance
	return nil
}

func (f *fakePerformanceRepo) Update(performance *model.Performance) error {
	p2 := *performance
	f.rows[perfKey(performance.UserID, performance.Date)] = &p2
	return nil
}

// ---- harness ----

type sessionFixture struct {
	svc        *sessionService
	users      *fakeUserRepo
	cards      *fakeFlashcardRepo
	categories *fakeCategoryRepo
	sessions   *fakeSessionRepo
	perf       *fakePerformanceRepo
}

func newSessionFixture(now time.Time) *sessionFixture {
	users := &fakeUserRepo{users: map[uint]*model.User{
		1: {ID: 1, Name: "Ana", Email: "ana@example.com"},
	}}
	cards := &fakeFlashcardRepo{cards: map[uint]*model.Flashcard{
		10: {ID: 10, Question: "Capital of France?", Answer: "Paris", CategoryID: 100},
		11: {ID: 11, Question: "2+2?", Answer: "4", CategoryID: 100},
		12: {ID: 12, Question: "Largest planet?", Answer: "Jupiter", CategoryID: 101},
	}}
	categories := &fakeCategoryRepo{categories: map[uint]*model.Category{
		100: {ID: 100, Name: "General"},
		101: {ID: 101, Name: "Science"},
	}}
	sessions := &fakeSessionRepo{}
	perf := &fakePerformanceRepo{rows: make(map[string]*model.Performance)}

	svc := NewSessionService(sessions, users, cards, categories, perf).(*sessionService)
	svc.now = func() time.Time { return now }

	return &sessionFixture{svc: svc, users: users, cards: cards, categories: categories, sessions: sessions, perf: perf}
}

func TestFinishSessionFirstBatch(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	fx := newSessionFixture(now)

	start := now.Add(-90 * time.Second)
	summary, err := fx.svc.FinishSession(1, FinishSessionRequest{
		Answers: []AnswerSubmission{
			{FlashcardID: 10, UserAnswer: "  paris ", TimeTaken: 5},
			{FlashcardID: 11, UserAnswer: "5", TimeTaken: 7},
			{FlashcardID: 12, UserAnswer: "Jupiter", TimeTaken: 9},
		},
		StartTime: &start,
		EndTime:   &now,
	})
	if err != nil {
		t.Fatalf("FinishSession: %v", err)
	}

	if summary.TotalAnswers != 3 || summary.TotalCorrect != 2 {
		t.Errorf("summary counts = %d/%d, want 2/3", summary.TotalCorrect, summary.TotalAnswers)
	}
	if summary.Accuracy != 66.7 {
		t.Errorf("summary accuracy = %v, want 66.7", summary.Accuracy)
	}
	if summary.TotalTime != 90 {
		t.Errorf("summary totalTime = %d, want 90", summary.TotalTime)
	}
	if summary.Streak != 1 {
		t.Errorf("summary streak = %d, want 1", summary.Streak)
	}
	if summary.SessionID == "" {
		t.Error("summary sessionId is empty")
	}

	// Session row persisted with graded answers.
	if len(fx.sessions.created) != 1 {
		t.Fatalf("sessions created = %d, want 1", len(fx.sessions.created))
	}
	session := fx.sessions.created[0]
	if len(session.Answers) != 3 || !session.Answers[0].IsCorrect || session.Answers[1].IsCorrect {
		t.Errorf("persisted answers graded wrong: %+v", session.Answers)
	}

	// Flashcard counters.
	if card := fx.cards.cards[10]; card.TotalAttempts != 1 || card.CorrectAttempts != 1 {
		t.Errorf("card 10 counters = %+v", card)
	}
	if card := fx.cards.cards[11]; card.TotalAttempts != 1 || card.IncorrectAttempts != 1 {
		t.Errorf("card 11 counters = %+v", card)
	}

	// Category counters follow each card's category.
	if cat := fx.categories.categories[100]; cat.TotalCorrect != 1 || cat.TotalIncorrect != 1 {
		t.Errorf("category 100 counters = %+v", cat)
	}
	if cat := fx.categories.categories[101]; cat.TotalCorrect != 1 || cat.TotalIncorrect != 0 {
		t.Errorf("category 101 counters = %+v", cat)
	}

	// User lifetime totals and streak.
	user := fx.users.users[1]
	if user.TotalCards != 3 || user.TotalCorrect != 2 {
		t.Errorf("user totals = %d/%d, want 2/3", user.TotalCorrect, user.TotalCards)
	}
	if user.Streak != 1 || user.LastStudyDate == nil || !user.LastStudyDate.Equal(now) {
		t.Errorf("user streak state = %d/%v", user.Streak, user.LastStudyDate)
	}

	// Daily rollup row created under local midnight.
	row, err := fx.perf.GetByUserAndDate(1, NormalizeDay(now))
	if err != nil {
		t.Fatalf("performance row missing: %v", err)
	}
	if row.TotalCards != 3 || row.CorrectAnswers != 2 || row.StudyTime != 2 {
		t.Errorf("performance row = %+v", row)
	}
}

func TestFinishSessionSkipsMissingFlashcards(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	fx := newSessionFixture(now)

	summary, err := fx.svc.FinishSession(1, FinishSessionRequest{
		Answers: []AnswerSubmission{
			{FlashcardID: 10, UserAnswer: "Paris"},
			{FlashcardID: 999, UserAnswer: "whatever"},
		},
	})
	if err != nil {
		t.Fatalf("FinishSession: %v", err)
	}

	// The skipped answer still counts in the denominator.
	if summary.TotalAnswers != 2 || summary.TotalCorrect != 1 {
		t.Errorf("summary counts = %d/%d, want 1/2", summary.TotalCorrect, summary.TotalAnswers)
	}
	if summary.Accuracy != 50 {
		t.Errorf("summary accuracy = %v, want 50", summary.Accuracy)
	}
	if len(fx.sessions.created[0].Answers) != 1 {
		t.Errorf("persisted answers = %d, want 1 (missing card dropped)", len(fx.sessions.created[0].Answers))
	}
}

func TestFinishSessionSameDayAccumulatesRollup(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	fx := newSessionFixture(now)

	batch := FinishSessionRequest{Answers: []AnswerSubmission{
		{FlashcardID: 10, UserAnswer: "Paris"},
		{FlashcardID: 11, UserAnswer: "nope"},
	}}
	if _, err := fx.svc.FinishSession(1, batch); err != nil {
		t.Fatalf("first batch: %v", err)
	}

	fx.svc.now = func() time.Time {
		return time.Date(2026, time.March, 10, 21, 0, 0, 0, time.UTC)
	}
	summary, err := fx.svc.FinishSession(1, FinishSessionRequest{Answers: []AnswerSubmission{
		{FlashcardID: 12, UserAnswer: "Jupiter"},
	}})
	if err != nil {
		t.Fatalf("second batch: %v", err)
	}

	// Same-day session never bumps the streak again.
	if summary.Streak != 1 {
		t.Errorf("streak after same-day batch = %d, want 1", summary.Streak)
	}

	row, err := fx.perf.GetByUserAndDate(1, NormalizeDay(now))
	if err != nil {
		t.Fatalf("performance row missing: %v", err)
	}
	if row.TotalCards != 3 || row.CorrectAnswers != 2 {
		t.Errorf("accumulated rollup = %+v, want 3 cards / 2 correct", row)
	}
	if Round1(row.Accuracy) != 66.7 {
		t.Errorf("rollup accuracy = %v, want ~66.7", row.Accuracy)
	}

	// Each batch still persists its own session row.
	if len(fx.sessions.created) != 2 {
		t.Errorf("sessions created = %d, want 2", len(fx.sessions.created))
	}
}

func TestFinishSessionConsecutiveDaysExtendStreak(t *testing.T) {
	day1 := time.Date(2026, time.March, 10, 20, 0, 0, 0, time.UTC)
	fx := newSessionFixture(day1)

	batch := FinishSessionRequest{Answers: []AnswerSubmission{
		{FlashcardID: 10, UserAnswer: "Paris"},
	}}
	if _, err := fx.svc.FinishSession(1, batch); err != nil {
		t.Fatalf("day 1: %v", err)
	}

	fx.svc.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	summary, err := fx.svc.FinishSession(1, batch)
	if err != nil {
		t.Fatalf("day 2: %v", err)
	}
	if summary.Streak != 2 {
		t.Errorf("streak after consecutive day = %d, want 2", summary.Streak)
	}

	// A gap resets back to 1.
	fx.svc.now = func() time.Time { return day1.AddDate(0, 0, 5) }
	summary, err = fx.svc.FinishSession(1, batch)
	if err != nil {
		t.Fatalf("day 6: %v", err)
	}
	if summary.Streak != 1 {
		t.Errorf("streak after gap = %d, want 1", summary.Streak)
	}
}

func TestFinishSessionEmptyBatch(t *testing.T) {
	fx := newSessionFixture(time.Now())
	_, err := fx.svc.FinishSession(1, FinishSessionRequest{})
	if !errors.Is(err, ErrNoAnswers) {
		t.Fatalf("err = %v, want ErrNoAnswers", err)
	}
	if len(fx.sessions.created) != 0 {
		t.Error("empty batch persisted a session")
	}
}

func TestFinishSessionUnknownUser(t *testing.T) {
	fx := newSessionFixture(time.Now())
	_, err := fx.svc.FinishSession(42, FinishSessionRequest{Answers: []AnswerSubmission{
		{FlashcardID: 10, UserAnswer: "Paris"},
	}})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestFinishSessionAbortsWhenSessionInsertFails(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	fx := newSessionFixture(now)
	fx.sessions.failCreate = true

	_, err := fx.svc.FinishSession(1, FinishSessionRequest{Answers: []AnswerSubmission{
		{FlashcardID: 10, UserAnswer: "Paris"},
	}})
	if err == nil {
		t.Fatal("expected error when session insert fails")
	}

	// User totals and the daily rollup must not have been touched.
	if user := fx.users.users[1]; user.TotalCards != 0 || user.Streak != 0 {
		t.Errorf("user updated despite aborted batch: %+v", user)
	}
	if len(fx.perf.rows) != 0 {
		t.Error("rollup written despite aborted batch")
	}
}

func TestGetSessionEnforcesOwnership(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	fx := newSessionFixture(now)
	fx.users.users[2] = &model.User{ID: 2, Name: "Bia", Email: "bia@example.com"}

	summary, err := fx.svc.FinishSession(1, FinishSessionRequest{Answers: []AnswerSubmission{
		{FlashcardID: 10, UserAnswer: "Paris"},
	}})
	if err != nil {
		t.Fatalf("FinishSession: %v", err)
	}

	if _, err := fx.svc.GetSession(2, summary.SessionID); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign session access err = %v, want ErrForbidden", err)
	}
	if _, err := fx.svc.GetSession(1, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("missing session err = %v, want ErrSessionNotFound", err)
	}
	if _, err := fx.svc.GetSession(1, summary.SessionID); err != nil {
		t.Errorf("owner access err = %v", err)
	}
}

func TestStartSession(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	fx := newSessionFixture(now)

	categoryID := uint(100)
	session, err := fx.svc.StartSession(1, &categoryID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if session.SessionID == "" {
		t.Error("session has no public ID")
	}
	if session.CategoryID == nil || *session.CategoryID != 100 {
		t.Errorf("session category = %v, want 100", session.CategoryID)
	}

	if _, err := fx.svc.StartSession(42, nil); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user err = %v, want ErrUserNotFound", err)
	}
}
