package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"memneo-backend/internal/model"
	"memneo-backend/internal/service"
)

type CategoryController struct {
	CategoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

func categoryIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid category ID", "error": err.Error()})
		return 0, false
	}
	return uint(id), true
}

// List handles GET /categories
func (cc *CategoryController) List(c *gin.Context) {
	categories, err := cc.CategoryService.GetAll()
	if err != nil {
		respondError(c, "failed to fetch categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Get handles GET /categories/:id
func (cc *CategoryController) Get(c *gin.Context) {
	id, ok := categoryIDParam(c)
	if !ok {
		return
	}
	category, err := cc.CategoryService.Get(id)
	if err != nil {
		respondError(c, "failed to fetch category", err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Create handles POST /categories
func (cc *CategoryController) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Color       string `json:"color"`
		Icon        string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input", "error": err.Error()})
		return
	}
	category := model.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	}
	if err := cc.CategoryService.Create(&category); err != nil {
		respondError(c, "failed to create category", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "category created successfully", "category": category})
}

// Update handles PUT /categories/:id
func (cc *CategoryController) Update(c *gin.Context) {
	id, ok := categoryIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
		Icon        string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input", "error": err.Error()})
		return
	}
	category, err := cc.CategoryService.Update(id, req.Name, req.Description, req.Color, req.Icon)
	if err != nil {
		respondError(c, "failed to update category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category updated successfully", "category": category})
}

// Delete handles DELETE /categories/:id
func (cc *CategoryController) Delete(c *gin.Context) {
	id, ok := categoryIDParam(c)
	if !ok {
		return
	}
	if err := cc.CategoryService.Delete(id); err != nil {
		respondError(c, "failed to delete category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted successfully"})
}

// Stats handles GET /categories/:id/stats
func (cc *CategoryController) Stats(c *gin.Context) {
	id, ok := categoryIDParam(c)
	if !ok {
		return
	}
	stats, err := cc.CategoryService.Stats(id)
	if err != nil {
		respondError(c, "failed to get category stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Flashcards handles GET /categories/:id/flashcards
func (cc *CategoryController) Flashcards(c *gin.Context) {
	id, ok := categoryIDParam(c)
	if !ok {
		return
	}
	page, limit := pagination(c)
	flashcards, total, err := cc.CategoryService.Flashcards(id, c.Query("difficulty"), page, limit)
	if err != nil {
		respondError(c, "failed to fetch category flashcards", err)
		return
	}
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	c.JSON(http.StatusOK, gin.H{
		"flashcards":  flashcards,
		"totalPages":  totalPages,
		"currentPage": page,
		"total":       total,
	})
}
