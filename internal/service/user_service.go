package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"memneo-backend/internal/model"
	"memneo-backend/internal/repository"
)

// UserStats is the summary shown on a user's stats card.
type UserStats struct {
	Accuracy     float64 `json:"accuracy"`
	Streak       int     `json:"streak"`
	TotalCards   int     `json:"totalCards"`
	TotalCorrect int     `json:"totalCorrect"`
}

type UserService interface {
	GetProfile(userID uint) (*model.User, error)
	UpdateProfile(userID uint, name, curso, nivel string) (*model.User, error)
	GetStats(userID uint) (*UserStats, error)
	AddFavorite(userID, flashcardID uint) (int, error)
	RemoveFavorite(userID, flashcardID uint) (int, error)
	GetFavorites(userID uint) ([]model.Flashcard, error)
}

type userService struct {
	userRepo      repository.UserRepository
	flashcardRepo repository.FlashcardRepository
}

func NewUserService(userRepo repository.UserRepository, flashcardRepo repository.FlashcardRepository) UserService {
	return &userService{userRepo: userRepo, flashcardRepo: flashcardRepo}
}

func (s *userService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(userID uint, name, curso, nivel string) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	if curso != "" {
		user.Curso = curso
	}
	if nivel != "" {
		user.Nivel = nivel
	}
	if err := s.userRepo.UpdateUser(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *userService) GetStats(userID uint) (*UserStats, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	return &UserStats{
		Accuracy:     Round1(user.Accuracy),
		Streak:       user.Streak,
		TotalCards:   user.TotalCards,
		TotalCorrect: user.TotalCorrect,
	}, nil
}

func (s *userService) AddFavorite(userID, flashcardID uint) (int, error) {
	if _, err := s.flashcardRepo.GetByID(flashcardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrFlashcardNotFound
		}
		return 0, fmt.Errorf("failed to load flashcard: %w", err)
	}

	already, err := s.userRepo.IsFavorite(userID, flashcardID)
	if err != nil {
		return 0, fmt.Errorf("failed to check favorites: %w", err)
	}
	if already {
		return 0, ErrAlreadyFavorite
	}

	if err := s.userRepo.AddFavorite(userID, flashcardID); err != nil {
		return 0, fmt.Errorf("failed to add favorite: %w", err)
	}

	favorites, err := s.userRepo.GetFavorites(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return len(favorites), nil
}

func (s *userService) RemoveFavorite(userID, flashcardID uint) (int, error) {
	isFavorite, err := s.userRepo.IsFavorite(userID, flashcardID)
	if err != nil {
		return 0, fmt.Errorf("failed to check favorites: %w", err)
	}
	if !isFavorite {
		return 0, ErrNotFavorite
	}

	if err := s.userRepo.RemoveFavorite(userID, flashcardID); err != nil {
		return 0, fmt.Errorf("failed to remove favorite: %w", err)
	}

	favorites, err := s.userRepo.GetFavorites(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return len(favorites), nil
}

func (s *userService) GetFavorites(userID uint) ([]model.Flashcard, error) {
	favorites, err := s.userRepo.GetFavorites(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}
	return favorites, nil
}
