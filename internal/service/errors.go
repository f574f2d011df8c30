package service

import "errors"

// Sentinel errors surfaced to the controllers, which map them to HTTP
// statuses. Persistence failures are wrapped with %w instead.
var (
	ErrNoAnswers          = errors.New("answers are required")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrFlashcardNotFound  = errors.New("flashcard not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrForbidden          = errors.New("access denied")
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
	ErrDuplicateCategory  = errors.New("a category with this name already exists")
	ErrCategoryInUse      = errors.New("category still has flashcards assigned")
	ErrAlreadyFavorite    = errors.New("flashcard is already a favorite")
	ErrNotFavorite        = errors.New("flashcard is not a favorite")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
