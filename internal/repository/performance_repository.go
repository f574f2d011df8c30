package repository

import (
	"time"

	"memneo-backend/internal/db"
	"memneo-backend/internal/model"
)

type PerformanceRepository interface {
	GetByUserAndDate(userID uint, date time.Time) (*model.Performance, error)
	Create(performance *model.Performance) error
	Update(performance *model.Performance) error
}

type performanceRepository struct{}

func NewPerformanceRepository() PerformanceRepository {
	return &performanceRepository{}
}

// GetByUserAndDate looks up the daily rollup row; date must already be
// truncated to midnight.
func (r *performanceRepository) GetByUserAndDate(userID uint, date time.Time) (*model.Performance, error) {
	var performance model.Performance
	err := db.GetDB().Where("user_id = ? AND date = ?", userID, date).First(&performance).Error
	if err != nil {
		return nil, err
	}
	return &performance, nil
}

func (r *performanceRepository) Create(performance *model.Performance) error {
	return db.GetDB().Create(performance).Error
}

func (r *performanceRepository) Update(performance *model.Performance) error {
	return db.GetDB().Save(performance).Error
}
