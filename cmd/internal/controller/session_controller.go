package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"memneo-backend/internal/service"
)

type SessionController struct {
	SessionService service.SessionService
}

func NewSessionController(sessionService service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// Start handles POST /sessions/start
func (sc *SessionController) Start(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	var req struct {
		CategoryID *uint `json:"categoryId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input", "error": err.Error()})
		return
	}
	session, err := sc.SessionService.StartSession(uid, req.CategoryID)
	if err != nil {
		respondError(c, "failed to start session", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "session started", "session": session})
}

// FinishStudy handles POST /sessions/finish-study. It grades the submitted
// batch, persists the session and every derived stat, and returns the
// per-batch summary.
func (sc *SessionController) FinishStudy(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	var req service.FinishSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input", "error": err.Error()})
		return
	}
	summary, err := sc.SessionService.FinishSession(uid, req)
	if err != nil {
		respondError(c, "failed to process study session", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// MySessions handles GET /sessions/my-sessions
func (sc *SessionController) MySessions(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)
	sessions, total, err := sc.SessionService.GetUserSessions(uid, page, limit)
	if err != nil {
		respondError(c, "failed to fetch sessions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessions":    sessions,
		"total":       total,
		"currentPage": page,
	})
}

// StatsOverview handles GET /sessions/stats/overview
func (sc *SessionController) StatsOverview(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	overview, err := sc.SessionService.StatsOverview(uid, days)
	if err != nil {
		respondError(c, "failed to compute session stats", err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Get handles GET /sessions/:sessionId
func (sc *SessionController) Get(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	session, err := sc.SessionService.GetSession(uid, c.Param("sessionId"))
	if err != nil {
		respondError(c, "failed to fetch session", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Delete handles DELETE /sessions/:sessionId
func (sc *SessionController) Delete(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := sc.SessionService.DeleteSession(uid, c.Param("sessionId")); err != nil {
		respondError(c, "failed to delete session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session deleted successfully"})
}
