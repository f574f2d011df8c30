package controller

import (
	"github.com/gin-gonic/gin"

	"memneo-backend/internal/config"
	"memneo-backend/internal/service"
	"memneo-backend/utilities"
)

// RegisterRoutes registers all route groups and their endpoints under the
// configured API path.
func RegisterRoutes(r *gin.Engine,
	cfg *config.APIConfig,
	authService service.AuthService,
	userService service.UserService,
	flashcardService service.FlashcardService,
	categoryService service.CategoryService,
	sessionService service.SessionService,
	analyticsService service.AnalyticsService,
	reportService service.ReportService,
) {
	authCtrl := NewAuthController(authService)
	userCtrl := NewUserController(userService)
	flashcardCtrl := NewFlashcardController(flashcardService)
	categoryCtrl := NewCategoryController(categoryService)
	sessionCtrl := NewSessionController(sessionService)
	analyticsCtrl := NewAnalyticsController(analyticsService, reportService)

	api := r.Group(cfg.Context.Path)

	loginLimiter := utilities.RateLimitMiddleware(cfg.Authentication.LoginRatePerMinute)

	userRoutes := api.Group("/users")
	{
		userRoutes.POST("/register", loginLimiter, authCtrl.Register)
		userRoutes.POST("/login", loginLimiter, authCtrl.Login)
		userRoutes.POST("/refresh", authCtrl.Refresh)

		authed := userRoutes.Group("", utilities.AuthMiddleware())
		{
			authed.GET("/profile", userCtrl.GetProfile)
			authed.PUT("/profile", userCtrl.UpdateProfile)
			authed.GET("/stats", userCtrl.GetStats)
			authed.GET("/favorites", userCtrl.GetFavorites)
			authed.POST("/favorites/:flashcardId", userCtrl.AddFavorite)
			authed.DELETE("/favorites/:flashcardId", userCtrl.RemoveFavorite)
		}
	}

	flashcardRoutes := api.Group("/flashcards", utilities.AuthMiddleware())
	{
		flashcardRoutes.GET("", flashcardCtrl.List)
		flashcardRoutes.GET("/:id", flashcardCtrl.Get)
		flashcardRoutes.POST("", flashcardCtrl.Create)
		flashcardRoutes.PUT("/:id", flashcardCtrl.Update)
		flashcardRoutes.DELETE("/:id", flashcardCtrl.Delete)
		flashcardRoutes.PATCH("/:id/performance", flashcardCtrl.RecordPerformance)
	}

	categoryRoutes := api.Group("/categories", utilities.AuthMiddleware())
	{
		categoryRoutes.GET("", categoryCtrl.List)
		categoryRoutes.GET("/:id", categoryCtrl.Get)
		categoryRoutes.POST("", categoryCtrl.Create)
		categoryRoutes.PUT("/:id", categoryCtrl.Update)
		categoryRoutes.DELETE("/:id", categoryCtrl.Delete)
		categoryRoutes.GET("/:id/stats", categoryCtrl.Stats)
		categoryRoutes.GET("/:id/flashcards", categoryCtrl.Flashcards)
	}

	sessionRoutes := api.Group("/sessions", utilities.AuthMiddleware())
	{
		sessionRoutes.POST("/start", sessionCtrl.Start)
		sessionRoutes.POST("/finish-study", sessionCtrl.FinishStudy)
		sessionRoutes.GET("/my-sessions", sessionCtrl.MySessions)
		sessionRoutes.GET("/stats/overview", sessionCtrl.StatsOverview)
		sessionRoutes.GET("/:sessionId", sessionCtrl.Get)
		sessionRoutes.DELETE("/:sessionId", sessionCtrl.Delete)
	}

	analyticsRoutes := api.Group("/analytics")
	{
		analyticsRoutes.GET("/dashboard", utilities.OptionalAuthMiddleware(), analyticsCtrl.Dashboard)
		analyticsRoutes.GET("/categories", analyticsCtrl.Categories)
		analyticsRoutes.GET("/most-missed-cards", analyticsCtrl.MostMissedCards)
		analyticsRoutes.GET("/top-users", analyticsCtrl.TopUsers)
		analyticsRoutes.GET("/most-frequent-sessions", analyticsCtrl.MostFrequentSessions)

		authedAnalytics := analyticsRoutes.Group("", utilities.AuthMiddleware())
		{
			authedAnalytics.GET("/progress", analyticsCtrl.Progress)
			authedAnalytics.GET("/user-report", analyticsCtrl.UserReport)
			authedAnalytics.GET("/user-report/download", analyticsCtrl.DownloadReport)
		}
	}
}
