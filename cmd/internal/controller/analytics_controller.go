package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"memneo-backend/internal/service"
)

type AnalyticsController struct {
	AnalyticsService service.AnalyticsService
	ReportService    service.ReportService
}

func NewAnalyticsController(analyticsService service.AnalyticsService, reportService service.ReportService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService, ReportService: reportService}
}

// Dashboard handles GET /analytics/dashboard. The route accepts anonymous
// callers; when a valid token is supplied the snapshot is personalized.
func (ac *AnalyticsController) Dashboard(c *gin.Context) {
	var userID *uint
	if uid, ok := currentUserID(c); ok {
		userID = &uid
	}
	stats, err := ac.AnalyticsService.Dashboard(userID)
	if err != nil {
		respondError(c, "failed to load dashboard", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Categories handles GET /analytics/categories
func (ac *AnalyticsController) Categories(c *gin.Context) {
	overview, err := ac.AnalyticsService.CategoriesStats()
	if err != nil {
		respondError(c, "failed to load category stats", err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// MostMissedCards handles GET /analytics/most-missed-cards
func (ac *AnalyticsController) MostMissedCards(c *gin.Context) {
	cards, err := ac.AnalyticsService.MostMissedCards()
	if err != nil {
		respondError(c, "failed to load most missed cards", err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// TopUsers handles GET /analytics/top-users
func (ac *AnalyticsController) TopUsers(c *gin.Context) {
	users, err := ac.AnalyticsService.TopAccuracyUsers()
	if err != nil {
		respondError(c, "failed to load top users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Progress handles GET /analytics/progress. With ?scope=me the series is
// restricted to the caller.
func (ac *AnalyticsController) Progress(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	var userID *uint
	if c.Query("scope") == "me" {
		uid, ok := mustUserID(c)
		if !ok {
			return
		}
		userID = &uid
	}

	points, err := ac.AnalyticsService.ProgressOverTime(userID, days)
	if err != nil {
		respondError(c, "failed to load progress", err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// MostFrequentSessions handles GET /analytics/most-frequent-sessions
func (ac *AnalyticsController) MostFrequentSessions(c *gin.Context) {
	sessions, err := ac.AnalyticsService.MostFrequentSessions()
	if err != nil {
		respondError(c, "failed to load frequent sessions", err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// UserReport handles GET /analytics/user-report
func (ac *AnalyticsController) UserReport(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	report, err := ac.AnalyticsService.UserPerformanceReport(uid)
	if err != nil {
		respondError(c, "failed to build user report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// DownloadReport handles GET /analytics/user-report/download. The PDF is
// regenerated on demand so it always reflects current stats.
func (ac *AnalyticsController) DownloadReport(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	path, err := ac.ReportService.GenerateReport(uid)
	if err != nil {
		respondError(c, "failed to generate report", err)
		return
	}
	c.FileAttachment(path, "study-report.pdf")
}
