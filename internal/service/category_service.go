package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"memneo-backend/internal/model"
	"memneo-backend/internal/repository"
)

// CategoryStats summarizes one category's counters.
type CategoryStats struct {
	Name           string  `json:"name"`
	TotalCards     int64   `json:"totalCards"`
	TotalCorrect   int     `json:"totalCorrect"`
	TotalIncorrect int     `json:"totalIncorrect"`
	Accuracy       float64 `json:"accuracy"`
}

type CategoryService interface {
	GetAll() ([]model.Category, error)
	Get(categoryID uint) (*model.Category, error)
	Create(category *model.Category) error
	Update(categoryID uint, name, description, color, icon string) (*model.Category, error)
	Delete(categoryID uint) error
	Stats(categoryID uint) (*CategoryStats, error)
	Flashcards(categoryID uint, difficulty string, page, limit int) ([]model.Flashcard, int64, error)
}

type categoryService struct {
	categoryRepo  repository.CategoryRepository
	flashcardRepo repository.FlashcardRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, flashcardRepo repository.FlashcardRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, flashcardRepo: flashcardRepo}
}

func (s *categoryService) GetAll() ([]model.Category, error) {
	return s.categoryRepo.GetAll()
}

func (s *categoryService) Get(categoryID uint) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Create(category *model.Category) error {
	existing, err := s.categoryRepo.GetByName(category.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing category: %w", err)
	}
	if existing != nil {
		return ErrDuplicateCategory
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (s *categoryService) Update(categoryID uint, name, description, color, icon string) (*model.Category, error) {
	category, err := s.Get(categoryID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		category.Name = name
	}
	if description != "" {
		category.Description = description
	}
	if color != "" {
		category.Color = color
	}
	if icon != "" {
		category.Icon = icon
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// Delete refuses to remove a category while flashcards still reference it.
func (s *categoryService) Delete(categoryID uint) error {
	if _, err := s.Get(categoryID); err != nil {
		return err
	}
	count, err := s.categoryRepo.CountFlashcards(categoryID)
	if err != nil {
		return fmt.Errorf("failed to count flashcards: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(categoryID)
}

func (s *categoryService) Stats(categoryID uint) (*CategoryStats, error) {
	category, err := s.Get(categoryID)
	if err != nil {
		return nil, err
	}
	count, err := s.categoryRepo.CountFlashcards(categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to count flashcards: %w", err)
	}
	return &CategoryStats{
		Name:           category.Name,
		TotalCards:     count,
		TotalCorrect:   category.TotalCorrect,
		TotalIncorrect: category.TotalIncorrect,
		Accuracy:       Round1(category.Accuracy()),
	}, nil
}

func (s *categoryService) Flashcards(categoryID uint, difficulty string, page, limit int) ([]model.Flashcard, int64, error) {
	if _, err := s.Get(categoryID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.flashcardRepo.ListByCategory(categoryID, difficulty, (page-1)*limit, limit)
}
