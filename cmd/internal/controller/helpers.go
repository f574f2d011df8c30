package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"memneo-backend/internal/config"
	"memneo-backend/internal/service"
)

// currentUserID pulls the authenticated caller out of the gin context.
func currentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	uid, ok := val.(uint)
	return uid, ok
}

// mustUserID aborts with 401 when no caller identity is present.
func mustUserID(c *gin.Context) (uint, bool) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not authenticated"})
	}
	return uid, ok
}

// pagination reads page/limit query params, falling back to the configured
// page size.
func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = 10
		if cfg := config.GetConfig(); cfg != nil && cfg.Pagination.PageSize > 0 {
			limit = cfg.Pagination.PageSize
		}
	}
	return page, limit
}

// respondError maps service errors onto HTTP statuses with the
// {message, error} body shape the clients expect.
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNoAnswers),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrDuplicateCategory),
		errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, service.ErrAlreadyFavorite),
		errors.Is(err, service.ErrNotFavorite),
		errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrFlashcardNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"message": message, "error": err.Error()})
}
