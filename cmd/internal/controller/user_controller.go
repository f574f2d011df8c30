package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"memneo-backend/internal/service"
)

type UserController struct {
	UserService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile handles GET /users/profile
func (uc *UserController) GetProfile(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	user, err := uc.UserService.GetProfile(uid)
	if err != nil {
		respondError(c, "failed to get profile", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /users/profile
func (uc *UserController) UpdateProfile(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	var req struct {
		Name  string `json:"name"`
		Curso string `json:"curso"`
		Nivel string `json:"nivel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input", "error": err.Error()})
		return
	}
	user, err := uc.UserService.UpdateProfile(uid, req.Name, req.Curso, req.Nivel)
	if err != nil {
		respondError(c, "failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully", "user": user})
}

// GetStats handles GET /users/stats
func (uc *UserController) GetStats(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	stats, err := uc.UserService.GetStats(uid)
	if err != nil {
		respondError(c, "failed to get stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AddFavorite handles POST /users/favorites/:flashcardId
func (uc *UserController) AddFavorite(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	flashcardID, err := strconv.ParseUint(c.Param("flashcardId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid flashcard ID", "error": err.Error()})
		return
	}
	count, err := uc.UserService.AddFavorite(uid, uint(flashcardID))
	if err != nil {
		respondError(c, "failed to add favorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flashcard added to favorites", "favoriteCount": count})
}

// RemoveFavorite handles DELETE /users/favorites/:flashcardId
func (uc *UserController) RemoveFavorite(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	flashcardID, err := strconv.ParseUint(c.Param("flashcardId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid flashcard ID", "error": err.Error()})
		return
	}
	count, err := uc.UserService.RemoveFavorite(uid, uint(flashcardID))
	if err != nil {
		respondError(c, "failed to remove favorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flashcard removed from favorites", "favoriteCount": count})
}

// GetFavorites handles GET /users/favorites
func (uc *UserController) GetFavorites(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	flashcards, err := uc.UserService.GetFavorites(uid)
	if err != nil {
		respondError(c, "failed to get favorites", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flashcards": flashcards})
}
