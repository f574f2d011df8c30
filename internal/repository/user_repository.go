package repository

import (
	"memneo-backend/internal/db"
	"memneo-backend/internal/model"
)

type UserRepository interface {
	GetUserByID(userID uint) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	CreateUser(user *model.User) error
	UpdateUser(user *model.User) error
	GetTopByAccuracy(limit int) ([]model.User, error)
	CountUsers() (int64, error)
	AddFavorite(userID, flashcardID uint) error
	RemoveFavorite(userID, flashcardID uint) error
	GetFavorites(userID uint) ([]model.Flashcard, error)
	IsFavorite(userID, flashcardID uint) (bool, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) GetUserByID(userID uint) (*model.User, error) {
	var user model.User
	err := db.GetDB().Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := db.GetDB().Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CreateUser(user *model.User) error {
	return db.GetDB().Create(user).Error
}

func (r *userRepository) UpdateUser(user *model.User) error {
	return db.GetDB().Save(user).Error
}

func (r *userRepository) GetTopByAccuracy(limit int) ([]model.User, error) {
	var users []model.User
	err := db.GetDB().Order("accuracy desc").Limit(limit).Find(&users).Error
	return users, err
}

func (r *userRepository) CountUsers() (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) AddFavorite(userID, flashcardID uint) error {
	user := model.User{ID: userID}
	return db.GetDB().Model(&user).Association("FavoriteFlashcards").Append(&model.Flashcard{ID: flashcardID})
}

func (r *userRepository) RemoveFavorite(userID, flashcardID uint) error {
	user := model.User{ID: userID}
	return db.GetDB().Model(&user).Association("FavoriteFlashcards").Delete(&model.Flashcard{ID: flashcardID})
}

func (r *userRepository) GetFavorites(userID uint) ([]model.Flashcard, error) {
	user := model.User{ID: userID}
	var flashcards []model.Flashcard
	err := db.GetDB().Model(&user).Preload("Category").Association("FavoriteFlashcards").Find(&flashcards)
	return flashcards, err
}

func (r *userRepository) IsFavorite(userID, flashcardID uint) (bool, error) {
	var count int64
	err := db.GetDB().Table("user_favorite_flashcards").
		Where("user_id = ? AND flashcard_id = ?", userID, flashcardID).
		Count(&count).Error
	return count > 0, err
}
