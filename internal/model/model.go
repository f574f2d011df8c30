package model

import "time"

// Difficulty levels accepted on flashcards.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

type User struct {
	ID                 uint        `json:"id" gorm:"primaryKey"`
	Name               string      `json:"name" gorm:"not null"`
	Email              string      `json:"email" gorm:"not null;uniqueIndex"`
	Password           string      `json:"-" gorm:"not null"`
	Curso              string      `json:"curso"`
	Nivel              string      `json:"nivel"`
	Accuracy           float64     `json:"accuracy" gorm:"default:0"`
	Streak             int         `json:"streak" gorm:"default:0"`
	TotalCards         int         `json:"totalCards" gorm:"default:0"`
	TotalCorrect       int         `json:"totalCorrect" gorm:"default:0"`
	LastLogin          time.Time   `json:"lastLogin"`
	LastStudyDate      *time.Time  `json:"lastStudyDate"`
	FavoriteFlashcards []Flashcard `json:"-" gorm:"many2many:user_favorite_flashcards"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

type Category struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null;uniqueIndex"`
	Description    string    `json:"description"`
	Color          string    `json:"color"`
	Icon           string    `json:"icon"`
	TotalCards     int       `json:"totalCards" gorm:"default:0"`
	TotalCorrect   int       `json:"totalCorrect" gorm:"default:0"`
	TotalIncorrect int       `json:"totalIncorrect" gorm:"default:0"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Accuracy is derived from the answer counters, never stored.
func (c *Category) Accuracy() float64 {
	total := c.TotalCorrect + c.TotalIncorrect
	if total == 0 {
		return 0
	}
	return float64(c.TotalCorrect) / float64(total) * 100
}

type Flashcard struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Question          string    `json:"question" gorm:"not null"`
	Options           []string  `json:"options" gorm:"serializer:json"`
	Answer            string    `json:"answer" gorm:"not null"`
	CategoryID        uint      `json:"categoryId" gorm:"not null;index"`
	Category          *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Difficulty        string    `json:"difficulty" gorm:"not null"`
	Tags              []string  `json:"tags" gorm:"serializer:json"`
	TotalAttempts     int       `json:"totalAttempts" gorm:"default:0"`
	CorrectAttempts   int       `json:"correctAttempts" gorm:"default:0"`
	IncorrectAttempts int       `json:"incorrectAttempts" gorm:"default:0"`
	CreatedByID       uint      `json:"createdBy" gorm:"index"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Accuracy is derived from the attempt counters, never stored.
func (f *Flashcard) Accuracy() float64 {
	if f.TotalAttempts == 0 {
		return 0
	}
	return float64(f.CorrectAttempts) / float64(f.TotalAttempts) * 100
}

// ErrorRate is the share of attempts answered incorrectly.
func (f *Flashcard) ErrorRate() float64 {
	if f.TotalAttempts == 0 {
		return 0
	}
	return float64(f.IncorrectAttempts) / float64(f.TotalAttempts) * 100
}

type StudySession struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	SessionID         string          `json:"sessionId" gorm:"not null;uniqueIndex"`
	UserID            uint            `json:"userId" gorm:"not null;index"`
	CategoryID        *uint           `json:"categoryId"`
	Category          *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Answers           []SessionAnswer `json:"answers" gorm:"foreignKey:StudySessionID"`
	StartTime         time.Time       `json:"startTime"`
	EndTime           time.Time       `json:"endTime"`
	TotalTime         int             `json:"totalTime"` // seconds
	TotalCorrect      int             `json:"totalCorrect" gorm:"default:0"`
	Accuracy          float64         `json:"accuracy" gorm:"default:0"`
	FlashcardsStudied int             `json:"flashcardsStudied" gorm:"default:0"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type SessionAnswer struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	StudySessionID uint   `json:"-" gorm:"not null;index"`
	FlashcardID    uint   `json:"flashcardId" gorm:"not null"`
	IsCorrect      bool   `json:"isCorrect"`
	TimeTaken      int    `json:"timeTaken"` // seconds
	UserAnswer     string `json:"userAnswer"`
}

// Performance is the daily study rollup, one row per user per calendar day.
type Performance struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"userId" gorm:"not null;uniqueIndex:idx_performance_user_date"`
	Date           time.Time `json:"date" gorm:"not null;uniqueIndex:idx_performance_user_date"`
	TotalCards     int       `json:"totalCards" gorm:"default:0"`
	CorrectAnswers int       `json:"correctAnswers" gorm:"default:0"`
	Accuracy       float64   `json:"accuracy" gorm:"default:0"`
	StudyTime      int       `json:"studyTime" gorm:"default:0"` // minutes
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
