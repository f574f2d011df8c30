package repository

import (
	"gorm.io/gorm"

	"memneo-backend/internal/db"
	"memneo-backend/internal/model"
)

type FlashcardRepository interface {
	GetByID(flashcardID uint) (*model.Flashcard, error)
	List(categoryID *uint, difficulty string) ([]model.Flashcard, error)
	ListByCategory(categoryID uint, difficulty string, offset, limit int) ([]model.Flashcard, int64, error)
	Create(flashcard *model.Flashcard) error
	Update(flashcard *model.Flashcard) error
	Delete(flashcardID uint) error
	IncrementAttempt(flashcardID uint, correct bool) error
	MostMissed(limit int) ([]model.Flashcard, error)
	Count() (int64, error)
	CountByCreator(userID uint) (int64, error)
}

type flashcardRepository struct{}

func NewFlashcardRepository() FlashcardRepository {
	return &flashcardRepository{}
}

func (r *flashcardRepository) GetByID(flashcardID uint) (*model.Flashcard, error) {
	var flashcard model.Flashcard
	err := db.GetDB().Preload("Category").Where("id = ?", flashcardID).First(&flashcard).Error
	if err != nil {
		return nil, err
	}
	return &flashcard, nil
}

func (r *flashcardRepository) List(categoryID *uint, difficulty string) ([]model.Flashcard, error) {
	q := db.GetDB().Preload("Category").Order("created_at desc")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}
	var flashcards []model.Flashcard
	err := q.Find(&flashcards).Error
	return flashcards, err
}

func (r *flashcardRepository) ListByCategory(categoryID uint, difficulty string, offset, limit int) ([]model.Flashcard, int64, error) {
	q := db.GetDB().Model(&model.Flashcard{}).Where("category_id = ?", categoryID)
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var flashcards []model.Flashcard
	err := q.Preload("Category").Order("created_at desc").Offset(offset).Limit(limit).Find(&flashcards).Error
	return flashcards, total, err
}

// Create inserts the flashcard and bumps the owning category's card count in
// one transaction.
func (r *flashcardRepository) Create(flashcard *model.Flashcard) error {
	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(flashcard).Error; err != nil {
			return err
		}
		return tx.Model(&model.Category{}).Where("id = ?", flashcard.CategoryID).
			UpdateColumn("total_cards", gorm.Expr("total_cards + 1")).Error
	})
}

func (r *flashcardRepository) Update(flashcard *model.Flashcard) error {
	return db.GetDB().Save(flashcard).Error
}

func (r *flashcardRepository) Delete(flashcardID uint) error {
	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		var flashcard model.Flashcard
		if err := tx.Where("id = ?", flashcardID).First(&flashcard).Error; err != nil {
			return err
		}
		if err := tx.Delete(&flashcard).Error; err != nil {
			return err
		}
		return tx.Model(&model.Category{}).Where("id = ? AND total_cards > 0", flashcard.CategoryID).
			UpdateColumn("total_cards", gorm.Expr("total_cards - 1")).Error
	})
}

// IncrementAttempt applies the attempt counters as a single atomic UPDATE so
// that concurrent sessions grading the same card do not lose increments.
func (r *flashcardRepository) IncrementAttempt(flashcardID uint, correct bool) error {
	updates := map[string]interface{}{
		"total_attempts": gorm.Expr("total_attempts + 1"),
	}
	if correct {
		updates["correct_attempts"] = gorm.Expr("correct_attempts + 1")
	} else {
		updates["incorrect_attempts"] = gorm.Expr("incorrect_attempts + 1")
	}
	return db.GetDB().Model(&model.Flashcard{}).Where("id = ?", flashcardID).
		UpdateColumns(updates).Error
}

func (r *flashcardRepository) MostMissed(limit int) ([]model.Flashcard, error) {
	var flashcards []model.Flashcard
	err := db.GetDB().Preload("Category").
		Where("total_attempts > 0").
		Order("incorrect_attempts desc").
		Order("(incorrect_attempts::float / total_attempts) desc").
		Limit(limit).
		Find(&flashcards).Error
	return flashcards, err
}

func (r *flashcardRepository) Count() (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.Flashcard{}).Count(&count).Error
	return count, err
}

func (r *flashcardRepository) CountByCreator(userID uint) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.Flashcard{}).Where("created_by_id = ?", userID).Count(&count).Error
	return count, err
}
