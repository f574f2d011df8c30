package repository

import (
	"time"

	"memneo-backend/internal/db"
	"memneo-backend/internal/model"
)

// SessionStats is the aggregate over a user's recent sessions.
type SessionStats struct {
	TotalSessions int64
	AvgAccuracy   float64
	TotalTime     int64
	TotalCards    int64
}

type SessionRepository interface {
	Create(session *model.StudySession) error
	GetBySessionID(sessionID string) (*model.StudySession, error)
	GetByUser(userID uint, offset, limit int) ([]model.StudySession, int64, error)
	Delete(id uint) error
	CountSince(since time.Time) (int64, error)
	CountByUserSince(userID uint, since time.Time) (int64, error)
	StatsByUserSince(userID uint, since time.Time) (*SessionStats, error)
	AvgAccuracy(userID *uint) (float64, int64, error)
}

type sessionRepository struct{}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(session *model.StudySession) error {
	return db.GetDB().Create(session).Error
}

func (r *sessionRepository) GetBySessionID(sessionID string) (*model.StudySession, error) {
	var session model.StudySession
	err := db.GetDB().Preload("Answers").Preload("Category").
		Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) GetByUser(userID uint, offset, limit int) ([]model.StudySession, int64, error) {
	var total int64
	if err := db.GetDB().Model(&model.StudySession{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.StudySession
	err := db.GetDB().Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *sessionRepository) Delete(id uint) error {
	return db.GetDB().Select("Answers").Delete(&model.StudySession{ID: id}).Error
}

func (r *sessionRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.StudySession{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *sessionRepository) CountByUserSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.StudySession{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *sessionRepository) StatsByUserSince(userID uint, since time.Time) (*SessionStats, error) {
	var stats SessionStats
	err := db.GetDB().Model(&model.StudySession{}).
		Select("COUNT(*) AS total_sessions, COALESCE(AVG(accuracy), 0) AS avg_accuracy, COALESCE(SUM(total_time), 0) AS total_time, COALESCE(SUM(flashcards_studied), 0) AS total_cards").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// AvgAccuracy returns the mean session accuracy and session count, scoped to
// one user when userID is non-nil, global otherwise.
func (r *sessionRepository) AvgAccuracy(userID *uint) (float64, int64, error) {
	var row struct {
		AvgAccuracy   float64
		TotalSessions int64
	}
	q := db.GetDB().Model(&model.StudySession{}).
		Select("COALESCE(AVG(accuracy), 0) AS avg_accuracy, COUNT(*) AS total_sessions")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if err := q.Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.AvgAccuracy, row.TotalSessions, nil
}
