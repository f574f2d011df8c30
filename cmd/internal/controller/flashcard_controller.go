package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"memneo-backend/internal/service"
)

type FlashcardController struct {
	FlashcardService service.FlashcardService
}

func NewFlashcardController(flashcardService service.FlashcardService) *FlashcardController {
	return &FlashcardController{FlashcardService: flashcardService}
}

// List handles GET /flashcards
func (fc *FlashcardController) List(c *gin.Context) {
	flashcards, err := fc.FlashcardService.List(c.Query("category"), c.Query("difficulty"))
	if err != nil {
		respondError(c, "failed to fetch flashcards", err)
		return
	}
	c.JSON(http.StatusOK, flashcards)
}

// Get handles GET /flashcards/:id
func (fc *FlashcardController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid flashcard ID", "error": err.Error()})
		return
	}
	flashcard, err := fc.FlashcardService.Get(uint(id))
	if err != nil {
		respondError(c, "failed to fetch flashcard", err)
		return
	}
	c.JSON(http.StatusOK, flashcard)
}

// Create handles POST /flashcards
func (fc *FlashcardController) Create(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	var req struct {
		Question     string   `json:"question" binding:"required"`
		Options      []string `json:"options" binding:"required,min=2"`
		Answer       string   `json:"answer" binding:"required"`
		CategoryName string   `json:"categoryName" binding:"required"`
		Difficulty   string   `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
		Tags         []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input", "error": err.Error()})
		return
	}

	flashcard, err := fc.FlashcardService.Create(service.CreateFlashcardInput{
		Question:     req.Question,
		Options:      req.Options,
		Answer:       req.Answer,
		CategoryName: req.CategoryName,
		Difficulty:   req.Difficulty,
		Tags:         req.Tags,
		CreatedByID:  uid,
	})
	if err != nil {
		respondError(c, "failed to create flashcard", err)
		return
	}
	c.JSON(http.StatusCreated, flashcard)
}

// Update handles PUT /flashcards/:id
func (fc *FlashcardController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid flashcard ID", "error": err.Error()})
		return
	}
	var req struct {
		Question   string   `json:"question"`
		Options    []string `json:"options"`
		Answer     string   `json:"answer"`
		Difficulty string   `json:"difficulty"`
		Tags       []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input", "error": err.Error()})
		return
	}
	flashcard, err := fc.FlashcardService.Update(uint(id), service.CreateFlashcardInput{
		Question:   req.Question,
		Options:    req.Options,
		Answer:     req.Answer,
		Difficulty: req.Difficulty,
		Tags:       req.Tags,
	})
	if err != nil {
		respondError(c, "failed to update flashcard", err)
		return
	}
	c.JSON(http.StatusOK, flashcard)
}

// Delete handles DELETE /flashcards/:id
func (fc *FlashcardController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid flashcard ID", "error": err.Error()})
		return
	}
	if err := fc.FlashcardService.Delete(uint(id)); err != nil {
		respondError(c, "failed to delete flashcard", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flashcard deleted successfully"})
}

// RecordPerformance handles PATCH /flashcards/:id/performance
func (fc *FlashcardController) RecordPerformance(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid flashcard ID", "error": err.Error()})
		return
	}
	var req struct {
		IsCorrect bool `json:"isCorrect"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input", "error": err.Error()})
		return
	}
	flashcard, err := fc.FlashcardService.RecordAttempt(uint(id), req.IsCorrect)
	if err != nil {
		respondError(c, "failed to update flashcard performance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flashcard performance updated successfully", "flashcard": flashcard})
}
