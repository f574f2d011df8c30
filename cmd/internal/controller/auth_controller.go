package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"memneo-backend/internal/model"
	"memneo-backend/internal/service"
	"memneo-backend/utilities"
)

type AuthController struct {
	AuthService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register handles POST /users/register
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Curso    string `json:"curso"`
		Nivel    string `json:"nivel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input", "error": err.Error()})
		return
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Curso:    req.Curso,
		Nivel:    req.Nivel,
	}
	if err := ac.AuthService.Register(&user); err != nil {
		respondError(c, "failed to register user", err)
		return
	}

	accessToken, refreshToken, err := utilities.GenerateTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to generate tokens", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "user registered successfully",
		"token":        accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// Login handles POST /users/login
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input", "error": err.Error()})
		return
	}

	user, err := ac.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, "login failed", err)
		return
	}

	accessToken, refreshToken, err := utilities.GenerateTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to generate tokens", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "login successful",
		"token":        accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// Refresh handles POST /users/refresh
func (ac *AuthController) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input", "error": err.Error()})
		return
	}

	accessToken, refreshToken, err := utilities.RefreshTokens(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "failed to refresh tokens", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        accessToken,
		"refreshToken": refreshToken,
	})
}
