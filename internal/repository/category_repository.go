package repository

import (
	"gorm.io/gorm"

	"memneo-backend/internal/db"
	"memneo-backend/internal/model"
)

type CategoryRepository interface {
	GetAll() ([]model.Category, error)
	GetByID(categoryID uint) (*model.Category, error)
	GetByName(name string) (*model.Category, error)
	Create(category *model.Category) error
	Update(category *model.Category) error
	Delete(categoryID uint) error
	IncrementAnswer(categoryID uint, correct bool) error
	RankedByCorrect() ([]model.Category, error)
	CountFlashcards(categoryID uint) (int64, error)
	Count() (int64, error)
}

type categoryRepository struct{}

func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) GetAll() ([]model.Category, error) {
	var categories []model.Category
	err := db.GetDB().Order("name asc").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) GetByID(categoryID uint) (*model.Category, error) {
	var category model.Category
	err := db.GetDB().Where("id = ?", categoryID).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetByName(name string) (*model.Category, error) {
	var category model.Category
	err := db.GetDB().Where("name = ?", name).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(category *model.Category) error {
	return db.GetDB().Create(category).Error
}

func (r *categoryRepository) Update(category *model.Category) error {
	return db.GetDB().Save(category).Error
}

func (r *categoryRepository) Delete(categoryID uint) error {
	return db.GetDB().Delete(&model.Category{}, categoryID).Error
}

// IncrementAnswer bumps the per-category answer counters atomically,
// independent of the flashcard counter update.
func (r *categoryRepository) IncrementAnswer(categoryID uint, correct bool) error {
	column := "total_incorrect"
	if correct {
		column = "total_correct"
	}
	return db.GetDB().Model(&model.Category{}).Where("id = ?", categoryID).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

func (r *categoryRepository) RankedByCorrect() ([]model.Category, error) {
	var categories []model.Category
	err := db.GetDB().Order("total_correct desc").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) CountFlashcards(categoryID uint) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.Flashcard{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *categoryRepository) Count() (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.Category{}).Count(&count).Error
	return count, err
}
