package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"memneo-backend/internal/model"
	"memneo-backend/internal/repository"
)

// CreateFlashcardInput carries the validated fields for a new flashcard.
// CategoryName is resolved to a category, creating one on first use.
type CreateFlashcardInput struct {
	Question     string
	Options      []string
	Answer       string
	CategoryName string
	Difficulty   string
	Tags         []string
	CreatedByID  uint
}

type FlashcardService interface {
	List(categoryName, difficulty string) ([]model.Flashcard, error)
	Get(flashcardID uint) (*model.Flashcard, error)
	Create(input CreateFlashcardInput) (*model.Flashcard, error)
	Update(flashcardID uint, input CreateFlashcardInput) (*model.Flashcard, error)
	Delete(flashcardID uint) error
	RecordAttempt(flashcardID uint, correct bool) (*model.Flashcard, error)
}

type flashcardService struct {
	flashcardRepo repository.FlashcardRepository
	categoryRepo  repository.CategoryRepository
}

func NewFlashcardService(flashcardRepo repository.FlashcardRepository, categoryRepo repository.CategoryRepository) FlashcardService {
	return &flashcardService{flashcardRepo: flashcardRepo, categoryRepo: categoryRepo}
}

func (s *flashcardService) List(categoryName, difficulty string) ([]model.Flashcard, error) {
	var categoryID *uint
	if categoryName != "" && categoryName != "all" {
		category, err := s.categoryRepo.GetByName(categoryName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
		categoryID = &category.ID
	}
	return s.flashcardRepo.List(categoryID, difficulty)
}

func (s *flashcardService) Get(flashcardID uint) (*model.Flashcard, error) {
	flashcard, err := s.flashcardRepo.GetByID(flashcardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlashcardNotFound
		}
		return nil, fmt.Errorf("failed to load flashcard: %w", err)
	}
	return flashcard, nil
}

func (s *flashcardService) Create(input CreateFlashcardInput) (*model.Flashcard, error) {
	category, err := s.categoryRepo.GetByName(input.CategoryName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
		category = &model.Category{Name: input.CategoryName}
		if err := s.categoryRepo.Create(category); err != nil {
			return nil, fmt.Errorf("failed to create category: %w", err)
		}
	}

	flashcard := &model.Flashcard{
		Question:    input.Question,
		Options:     input.Options,
		Answer:      input.Answer,
		CategoryID:  category.ID,
		Difficulty:  input.Difficulty,
		Tags:        input.Tags,
		CreatedByID: input.CreatedByID,
	}
	if err := s.flashcardRepo.Create(flashcard); err != nil {
		return nil, fmt.Errorf("failed to create flashcard: %w", err)
	}
	flashcard.Category = category
	return flashcard, nil
}

func (s *flashcardService) Update(flashcardID uint, input CreateFlashcardInput) (*model.Flashcard, error) {
	flashcard, err := s.Get(flashcardID)
	if err != nil {
		return nil, err
	}

	if input.Question != "" {
		flashcard.Question = input.Question
	}
	if len(input.Options) > 0 {
		flashcard.Options = input.Options
	}
	if input.Answer != "" {
		flashcard.Answer = input.Answer
	}
	if input.Difficulty != "" {
		flashcard.Difficulty = input.Difficulty
	}
	if input.Tags != nil {
		flashcard.Tags = input.Tags
	}

	if err := s.flashcardRepo.Update(flashcard); err != nil {
		return nil, fmt.Errorf("failed to update flashcard: %w", err)
	}
	return flashcard, nil
}

func (s *flashcardService) Delete(flashcardID uint) error {
	if err := s.flashcardRepo.Delete(flashcardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFlashcardNotFound
		}
		return fmt.Errorf("failed to delete flashcard: %w", err)
	}
	return nil
}

// RecordAttempt is the single-card counter path used by the flashcard
// performance endpoint; study batches go through the session service instead.
func (s *flashcardService) RecordAttempt(flashcardID uint, correct bool) (*model.Flashcard, error) {
	flashcard, err := s.Get(flashcardID)
	if err != nil {
		return nil, err
	}
	if err := s.flashcardRepo.IncrementAttempt(flashcard.ID, correct); err != nil {
		return nil, fmt.Errorf("failed to update flashcard stats: %w", err)
	}
	if err := s.categoryRepo.IncrementAnswer(flashcard.CategoryID, correct); err != nil {
		return nil, fmt.Errorf("failed to update category stats: %w", err)
	}
	return s.Get(flashcardID)
}
