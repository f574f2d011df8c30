package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"memneo-backend/internal/db"
	"memneo-backend/internal/model"
	"memneo-backend/internal/repository"
)

// CategoryOverview is one row of the category leaderboard.
type CategoryOverview struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Color          string  `json:"color"`
	Icon           string  `json:"icon"`
	TotalCards     int     `json:"totalCards"`
	TotalCorrect   int     `json:"totalCorrect"`
	TotalIncorrect int     `json:"totalIncorrect"`
	Accuracy       float64 `json:"accuracy"`
}

// MissedCard is one row of the most-missed flashcards report.
type MissedCard struct {
	ID                uint    `json:"id"`
	Question          string  `json:"question"`
	Answer            string  `json:"answer"`
	Difficulty        string  `json:"difficulty"`
	CategoryName      string  `json:"categoryName"`
	CategoryColor     string  `json:"categoryColor"`
	TotalAttempts     int     `json:"totalAttempts"`
	CorrectAttempts   int     `json:"correctAttempts"`
	IncorrectAttempts int     `json:"incorrectAttempts"`
	ErrorRate         float64 `json:"errorRate"`
}

// TopUser is one row of the accuracy leaderboard.
type TopUser struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Curso      string  `json:"curso"`
	Nivel      string  `json:"nivel"`
	Accuracy   float64 `json:"accuracy"`
	TotalCards int     `json:"totalCards"`
	Streak     int     `json:"streak"`
}

// ProgressPoint is one day of the progress-over-time series.
type ProgressPoint struct {
	Date           string  `json:"date"`
	TotalCards     int64   `json:"totalCards"`
	TotalCorrect   int64   `json:"totalCorrect"`
	AvgAccuracy    float64 `json:"avgAccuracy"`
	TotalStudyTime int64   `json:"totalStudyTime"`
	ActiveUsers    int64   `json:"activeUsers"`
}

// FrequentSession is one row of the most-frequent-sessions report.
type FrequentSession struct {
	UserName     string    `json:"userName"`
	CategoryName string    `json:"categoryName"`
	SessionCount int64     `json:"sessionCount"`
	TotalTime    int64     `json:"totalTime"`
	AvgAccuracy  float64   `json:"avgAccuracy"`
	LastSession  time.Time `json:"lastSession"`
}

// DashboardStats is the dashboard snapshot; the user-scoped fields are only
// populated when a caller identity was supplied.
type DashboardStats struct {
	TotalUsers      int64   `json:"totalUsers"`
	TotalFlashcards int64   `json:"totalFlashcards"`
	TotalCategories int64   `json:"totalCategories"`
	TodaySessions   int64   `json:"todaySessions"`
	OverallAccuracy float64 `json:"overallAccuracy"`
	TotalSessions   int64   `json:"totalSessions"`
	UserStreak      int     `json:"userStreak,omitempty"`
	UserTotalCards  int     `json:"userTotalCards,omitempty"`
}

// CategoryPerformance groups a user's sessions per category.
type CategoryPerformance struct {
	CategoryName  string  `json:"categoryName"`
	CategoryColor string  `json:"categoryColor"`
	SessionsCount int64   `json:"sessionsCount"`
	AvgAccuracy   float64 `json:"avgAccuracy"`
	TotalTime     int64   `json:"totalTime"`
}

// PerformanceReport is the full per-user report.
type PerformanceReport struct {
	User                *TopUser              `json:"userStats"`
	RecentSessions      []model.StudySession  `json:"recentSessions"`
	CategoryPerformance []CategoryPerformance `json:"categoryPerformance"`
}

type AnalyticsService interface {
	CategoriesStats() ([]CategoryOverview, error)
	MostMissedCards() ([]MissedCard, error)
	TopAccuracyUsers() ([]TopUser, error)
	ProgressOverTime(userID *uint, days int) ([]ProgressPoint, error)
	MostFrequentSessions() ([]FrequentSession, error)
	Dashboard(userID *uint) (*DashboardStats, error)
	UserPerformanceReport(userID uint) (*PerformanceReport, error)
}

type analyticsService struct {
	userRepo      repository.UserRepository
	flashcardRepo repository.FlashcardRepository
	categoryRepo  repository.CategoryRepository
	sessionRepo   repository.SessionRepository
	executor      *db.QueryExecutor
	now           func() time.Time
}

func NewAnalyticsService(
	userRepo repository.UserRepository,
	flashcardRepo repository.FlashcardRepository,
	categoryRepo repository.CategoryRepository,
	sessionRepo repository.SessionRepository,
	executor *db.QueryExecutor,
) AnalyticsService {
	return &analyticsService{
		userRepo:      userRepo,
		flashcardRepo: flashcardRepo,
		categoryRepo:  categoryRepo,
		sessionRepo:   sessionRepo,
		executor:      executor,
		now:           time.Now,
	}
}

func (s *analyticsService) CategoriesStats() ([]CategoryOverview, error) {
	categories, err := s.categoryRepo.RankedByCorrect()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	overview := make([]CategoryOverview, 0, len(categories))
	for _, category := range categories {
		overview = append(overview, CategoryOverview{
			ID:             category.ID,
			Name:           category.Name,
			Color:          category.Color,
			Icon:           category.Icon,
			TotalCards:     category.TotalCards,
			TotalCorrect:   category.TotalCorrect,
			TotalIncorrect: category.TotalIncorrect,
			Accuracy:       Round1(category.Accuracy()),
		})
	}
	return overview, nil
}

func (s *analyticsService) MostMissedCards() ([]MissedCard, error) {
	flashcards, err := s.flashcardRepo.MostMissed(20)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch most missed cards: %w", err)
	}
	cards := make([]MissedCard, 0, len(flashcards))
	for _, flashcard := range flashcards {
		card := MissedCard{
			ID:                flashcard.ID,
			Question:          flashcard.Question,
			Answer:            flashcard.Answer,
			Difficulty:        flashcard.Difficulty,
			TotalAttempts:     flashcard.TotalAttempts,
			CorrectAttempts:   flashcard.CorrectAttempts,
			IncorrectAttempts: flashcard.IncorrectAttempts,
			ErrorRate:         Round1(flashcard.ErrorRate()),
		}
		if flashcard.Category != nil {
			card.CategoryName = flashcard.Category.Name
			card.CategoryColor = flashcard.Category.Color
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (s *analyticsService) TopAccuracyUsers() ([]TopUser, error) {
	users, err := s.userRepo.GetTopByAccuracy(10)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top users: %w", err)
	}
	top := make([]TopUser, 0, len(users))
	for _, user := range users {
		top = append(top, TopUser{
			ID:         user.ID,
			Name:       user.Name,
			Email:      user.Email,
			Curso:      user.Curso,
			Nivel:      user.Nivel,
			Accuracy:   Round1(user.Accuracy),
			TotalCards: user.TotalCards,
			Streak:     user.Streak,
		})
	}
	return top, nil
}

func (s *analyticsService) ProgressOverTime(userID *uint, days int) ([]ProgressPoint, error) {
	if days < 1 {
		days = 30
	}
	since := NormalizeDay(s.now().AddDate(0, 0, -days))

	query := `SELECT to_char(date, 'YYYY-MM-DD') AS day,
       SUM(total_cards) AS total_cards,
       SUM(correct_answers) AS total_correct,
       AVG(accuracy) AS avg_accuracy,
       SUM(study_time) AS total_study_time,
       COUNT(DISTINCT user_id) AS active_users
FROM performances
WHERE date >= ?`
	args := []interface{}{since}
	if userID != nil {
		query += ` AND user_id = ?`
		args = append(args, *userID)
	}
	query += ` GROUP BY day ORDER BY day ASC`

	rows, err := s.executor.Select(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate progress: %w", err)
	}

	points := make([]ProgressPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, ProgressPoint{
			Date:           asString(row["day"]),
			TotalCards:     asInt64(row["total_cards"]),
			TotalCorrect:   asInt64(row["total_correct"]),
			AvgAccuracy:    Round1(asFloat64(row["avg_accuracy"])),
			TotalStudyTime: asInt64(row["total_study_time"]),
			ActiveUsers:    asInt64(row["active_users"]),
		})
	}
	return points, nil
}

func (s *analyticsService) MostFrequentSessions() ([]FrequentSession, error) {
	query := `SELECT u.name AS user_name,
       COALESCE(c.name, 'Geral') AS category_name,
       COUNT(*) AS session_count,
       COALESCE(SUM(s.total_time), 0) AS total_time,
       COALESCE(AVG(s.accuracy), 0) AS avg_accuracy,
       MAX(s.created_at) AS last_session
FROM study_sessions s
JOIN users u ON u.id = s.user_id
LEFT JOIN categories c ON c.id = s.category_id
GROUP BY u.name, c.name
ORDER BY session_count DESC
LIMIT 20`

	rows, err := s.executor.Select(query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sessions: %w", err)
	}

	sessions := make([]FrequentSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, FrequentSession{
			UserName:     asString(row["user_name"]),
			CategoryName: asString(row["category_name"]),
			SessionCount: asInt64(row["session_count"]),
			TotalTime:    asInt64(row["total_time"]),
			AvgAccuracy:  Round1(asFloat64(row["avg_accuracy"])),
			LastSession:  asTime(row["last_session"]),
		})
	}
	return sessions, nil
}

// Dashboard computes the snapshot; personalized when a caller identity is
// present, global otherwise. Every call re-queries current state.
func (s *analyticsService) Dashboard(userID *uint) (*DashboardStats, error) {
	today := NormalizeDay(s.now())

	totalUsers, err := s.userRepo.CountUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	totalCategories, err := s.categoryRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	stats := &DashboardStats{
		TotalUsers:      totalUsers,
		TotalCategories: totalCategories,
	}

	if userID == nil {
		if stats.TotalFlashcards, err = s.flashcardRepo.Count(); err != nil {
			return nil, fmt.Errorf("failed to count flashcards: %w", err)
		}
		if stats.TodaySessions, err = s.sessionRepo.CountSince(today); err != nil {
			return nil, fmt.Errorf("failed to count today's sessions: %w", err)
		}
		avg, total, err := s.sessionRepo.AvgAccuracy(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to compute overall accuracy: %w", err)
		}
		stats.OverallAccuracy = Round1(avg)
		stats.TotalSessions = total
		return stats, nil
	}

	user, err := s.userRepo.GetUserByID(*userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if stats.TotalFlashcards, err = s.flashcardRepo.CountByCreator(*userID); err != nil {
		return nil, fmt.Errorf("failed to count flashcards: %w", err)
	}
	if stats.TodaySessions, err = s.sessionRepo.CountByUserSince(*userID, today); err != nil {
		return nil, fmt.Errorf("failed to count today's sessions: %w", err)
	}
	avg, total, err := s.sessionRepo.AvgAccuracy(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute user accuracy: %w", err)
	}
	if total > 0 {
		stats.OverallAccuracy = Round1(avg)
	} else {
		stats.OverallAccuracy = Round1(user.Accuracy)
	}
	stats.TotalSessions = total
	stats.UserStreak = user.Streak
	stats.UserTotalCards = user.TotalCards
	return stats, nil
}

func (s *analyticsService) UserPerformanceReport(userID uint) (*PerformanceReport, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	recent, _, err := s.sessionRepo.GetByUser(userID, 0, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent sessions: %w", err)
	}

	query := `SELECT COALESCE(c.name, 'Geral') AS category_name,
       COALESCE(c.color, '') AS category_color,
       COUNT(*) AS sessions_count,
       COALESCE(AVG(s.accuracy), 0) AS avg_accuracy,
       COALESCE(SUM(s.total_time), 0) AS total_time
FROM study_sessions s
LEFT JOIN categories c ON c.id = s.category_id
WHERE s.user_id = ?
GROUP BY c.name, c.color
ORDER BY sessions_count DESC`

	rows, err := s.executor.Select(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category performance: %w", err)
	}

	performance := make([]CategoryPerformance, 0, len(rows))
	for _, row := range rows {
		performance = append(performance, CategoryPerformance{
			CategoryName:  asString(row["category_name"]),
			CategoryColor: asString(row["category_color"]),
			SessionsCount: asInt64(row["sessions_count"]),
			AvgAccuracy:   Round1(asFloat64(row["avg_accuracy"])),
			TotalTime:     asInt64(row["total_time"]),
		})
	}

	return &PerformanceReport{
		User: &TopUser{
			ID:         user.ID,
			Name:       user.Name,
			Accuracy:   Round1(user.Accuracy),
			TotalCards: user.TotalCards,
			Streak:     user.Streak,
		},
		RecentSessions:      recent,
		CategoryPerformance: performance,
	}, nil
}
