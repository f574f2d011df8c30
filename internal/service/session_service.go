package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"memneo-backend/internal/model"
	"memneo-backend/internal/repository"
	"memneo-backend/pkg/logging"
	"memneo-backend/utilities"
)

// EventSessionFinished is published with the user ID after a study batch has
// been fully processed and persisted.
const EventSessionFinished = "session_finished"

// AnswerSubmission is one answered flashcard within a study batch.
type AnswerSubmission struct {
	FlashcardID uint   `json:"flashcardId"`
	UserAnswer  string `json:"userAnswer"`
	TimeTaken   int    `json:"timeTaken"`
}

// FinishSessionRequest is the body of POST /sessions/finish-study.
type FinishSessionRequest struct {
	Answers   []AnswerSubmission `json:"answers"`
	StartTime *time.Time         `json:"startTime"`
	EndTime   *time.Time         `json:"endTime"`
}

// SessionSummary is returned to the client after a batch is processed.
type SessionSummary struct {
	SessionID    string  `json:"sessionId"`
	TotalTime    int     `json:"totalTime"`
	TotalCorrect int     `json:"totalCorrect"`
	TotalAnswers int     `json:"totalAnswers"`
	Accuracy     float64 `json:"accuracy"`
	Streak       int     `json:"streak"`
}

// SessionOverview aggregates a user's sessions over a recent window.
type SessionOverview struct {
	TotalSessions int64   `json:"totalSessions"`
	AvgAccuracy   float64 `json:"avgAccuracy"`
	TotalTime     int64   `json:"totalTime"` // minutes
	TotalCards    int64   `json:"totalCards"`
}

type SessionService interface {
	StartSession(userID uint, categoryID *uint) (*model.StudySession, error)
	FinishSession(userID uint, req FinishSessionRequest) (*SessionSummary, error)
	GetUserSessions(userID uint, page, limit int) ([]model.StudySession, int64, error)
	GetSession(userID uint, sessionID string) (*model.StudySession, error)
	DeleteSession(userID uint, sessionID string) error
	StatsOverview(userID uint, days int) (*SessionOverview, error)
}

type sessionService struct {
	sessionRepo     repository.SessionRepository
	userRepo        repository.UserRepository
	flashcardRepo   repository.FlashcardRepository
	categoryRepo    repository.CategoryRepository
	performanceRepo repository.PerformanceRepository
	now             func() time.Time
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	flashcardRepo repository.FlashcardRepository,
	categoryRepo repository.CategoryRepository,
	performanceRepo repository.PerformanceRepository,
) SessionService {
	return &sessionService{
		sessionRepo:     sessionRepo,
		userRepo:        userRepo,
		flashcardRepo:   flashcardRepo,
		categoryRepo:    categoryRepo,
		performanceRepo: performanceRepo,
		now:             time.Now,
	}
}

// GradeAnswer compares a submitted answer against the flashcard's canonical
// answer: trimmed, case-insensitive string equality.
func GradeAnswer(userAnswer, canonicalAnswer string) bool {
	return strings.EqualFold(strings.TrimSpace(userAnswer), strings.TrimSpace(canonicalAnswer))
}

// Round1 rounds to one decimal place, the precision used for every accuracy
// value returned to clients.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func batchAccuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

func (s *sessionService) StartSession(userID uint, categoryID *uint) (*model.StudySession, error) {
	if _, err := s.userRepo.GetUserByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	session := &model.StudySession{
		SessionID:  uuid.New().String(),
		UserID:     userID,
		CategoryID: categoryID,
		StartTime:  s.now(),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// FinishSession grades a finished study batch and applies all derived state:
// flashcard and category counters, the user's lifetime totals and streak,
// and the daily performance rollup. The steps run against the store in
// sequence without a wrapping transaction; a failure aborts the remaining
// steps but does not roll back the earlier ones.
func (s *sessionService) FinishSession(userID uint, req FinishSessionRequest) (*SessionSummary, error) {
	if len(req.Answers) == 0 {
		return nil, ErrNoAnswers
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	now := s.now()
	startTime := now
	if req.StartTime != nil {
		startTime = *req.StartTime
	}
	endTime := now
	if req.EndTime != nil {
		endTime = *req.EndTime
	}
	totalTime := int(math.Round(endTime.Sub(startTime).Seconds()))

	// Grade each answer in submission order. An answer referencing a
	// missing flashcard is skipped; it still counts in the accuracy
	// denominator below.
	totalCorrect := 0
	processed := make([]model.SessionAnswer, 0, len(req.Answers))
	for _, answer := range req.Answers {
		flashcard, err := s.flashcardRepo.GetByID(answer.FlashcardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logging.Warn("skipping answer for missing flashcard %d", answer.FlashcardID)
				continue
			}
			return nil, fmt.Errorf("failed to load flashcard %d: %w", answer.FlashcardID, err)
		}

		isCorrect := GradeAnswer(answer.UserAnswer, flashcard.Answer)
		if isCorrect {
			totalCorrect++
		}
		processed = append(processed, model.SessionAnswer{
			FlashcardID: answer.FlashcardID,
			IsCorrect:   isCorrect,
			TimeTaken:   answer.TimeTaken,
			UserAnswer:  answer.UserAnswer,
		})

		if err := s.flashcardRepo.IncrementAttempt(flashcard.ID, isCorrect); err != nil {
			return nil, fmt.Errorf("failed to update flashcard stats: %w", err)
		}
		if err := s.categoryRepo.IncrementAnswer(flashcard.CategoryID, isCorrect); err != nil {
			return nil, fmt.Errorf("failed to update category stats: %w", err)
		}
	}

	// Accuracy is computed over the submitted answer count, including any
	// skipped answers.
	accuracy := batchAccuracy(totalCorrect, len(req.Answers))

	session := &model.StudySession{
		SessionID:         uuid.New().String(),
		UserID:            userID,
		Answers:           processed,
		StartTime:         startTime,
		EndTime:           endTime,
		TotalTime:         totalTime,
		TotalCorrect:      totalCorrect,
		Accuracy:          accuracy,
		FlashcardsStudied: len(req.Answers),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	user.TotalCards += len(req.Answers)
	user.TotalCorrect += totalCorrect
	if user.TotalCards > 0 {
		user.Accuracy = float64(user.TotalCorrect) / float64(user.TotalCards) * 100
	} else {
		user.Accuracy = 0
	}
	user.Streak, user.LastStudyDate = UpdateStreak(user.LastStudyDate, user.Streak, now)
	if err := s.userRepo.UpdateUser(user); err != nil {
		return nil, fmt.Errorf("failed to update user stats: %w", err)
	}

	studyMinutes := int(math.Round(float64(totalTime) / 60))
	if err := s.upsertDailyPerformance(userID, now, len(req.Answers), totalCorrect, studyMinutes); err != nil {
		return nil, fmt.Errorf("failed to update daily performance: %w", err)
	}

	utilities.GlobalEventBus.Publish(EventSessionFinished, userID)

	return &SessionSummary{
		SessionID:    session.SessionID,
		TotalTime:    totalTime,
		TotalCorrect: totalCorrect,
		TotalAnswers: len(req.Answers),
		Accuracy:     Round1(accuracy),
		Streak:       user.Streak,
	}, nil
}

// upsertDailyPerformance accumulates a batch into the (user, day) rollup
// row, creating it on the first batch of the day. Repeated calls keep
// adding; only the date bucketing is idempotent.
func (s *sessionService) upsertDailyPerformance(userID uint, now time.Time, cardsStudied, correctCount, studyMinutes int) error {
	day := NormalizeDay(now)

	performance, err := s.performanceRepo.GetByUserAndDate(userID, day)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return s.performanceRepo.Create(&model.Performance{
			UserID:         userID,
			Date:           day,
			TotalCards:     cardsStudied,
			CorrectAnswers: correctCount,
			Accuracy:       batchAccuracy(correctCount, cardsStudied),
			StudyTime:      studyMinutes,
		})
	}

	performance.TotalCards += cardsStudied
	performance.CorrectAnswers += correctCount
	performance.Accuracy = batchAccuracy(performance.CorrectAnswers, performance.TotalCards)
	performance.StudyTime += studyMinutes
	return s.performanceRepo.Update(performance)
}

func (s *sessionService) GetUserSessions(userID uint, page, limit int) ([]model.StudySession, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.sessionRepo.GetByUser(userID, (page-1)*limit, limit)
}

func (s *sessionService) GetSession(userID uint, sessionID string) (*model.StudySession, error) {
	session, err := s.sessionRepo.GetBySessionID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}
	return session, nil
}

func (s *sessionService) DeleteSession(userID uint, sessionID string) error {
	session, err := s.sessionRepo.GetBySessionID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != userID {
		return ErrForbidden
	}
	return s.sessionRepo.Delete(session.ID)
}

func (s *sessionService) StatsOverview(userID uint, days int) (*SessionOverview, error) {
	if days < 1 {
		days = 7
	}
	since := s.now().AddDate(0, 0, -days)
	stats, err := s.sessionRepo.StatsByUserSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sessions: %w", err)
	}
	return &SessionOverview{
		TotalSessions: stats.TotalSessions,
		AvgAccuracy:   Round1(stats.AvgAccuracy),
		TotalTime:     int64(math.Round(float64(stats.TotalTime) / 60)),
		TotalCards:    stats.TotalCards,
	}, nil
}
