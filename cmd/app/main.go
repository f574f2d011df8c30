package main

import (
	"fmt"
	"log"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"memneo-backend/cmd/internal/controller"
	"memneo-backend/internal/config"
	"memneo-backend/internal/db"
	"memneo-backend/internal/model"
	"memneo-backend/internal/repository"
	"memneo-backend/internal/service"
	"memneo-backend/pkg/logging"
	"memneo-backend/pkg/middleware"
)

func main() {
	printStartUpBanner()

	// .env is optional; real deployments export the variables directly.
	_ = godotenv.Load()

	// Load XML configuration from file.
	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logging.Init(cfg.Context.LogDir); err != nil {
		log.Fatalf("failed to initialize logging: %v", err)
	}

	if cfg.Context.TimeZone != "" {
		loc, err := time.LoadLocation(cfg.Context.TimeZone)
		if err != nil {
			log.Fatalf("invalid time zone %q: %v", cfg.Context.TimeZone, err)
		}
		time.Local = loc
	}

	// Initialize DB using the loaded config.
	if err := db.InitDBFromConfig(cfg); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	// Run migrations.
	if err := db.GetDB().AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Flashcard{},
		&model.StudySession{},
		&model.SessionAnswer{},
		&model.Performance{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Create repositories.
	userRepo := repository.NewUserRepository()
	flashcardRepo := repository.NewFlashcardRepository()
	categoryRepo := repository.NewCategoryRepository()
	sessionRepo := repository.NewSessionRepository()
	performanceRepo := repository.NewPerformanceRepository()

	// Create services.
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, flashcardRepo)
	flashcardService := service.NewFlashcardService(flashcardRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo, flashcardRepo)
	sessionService := service.NewSessionService(sessionRepo, userRepo, flashcardRepo, categoryRepo, performanceRepo)
	analyticsService := service.NewAnalyticsService(userRepo, flashcardRepo, categoryRepo, sessionRepo, db.NewQueryExecutor(db.GetDB()))
	reportService := service.NewReportService(analyticsService)

	// Regenerate a user's PDF report after each finished session.
	service.InitReportEventListeners(analyticsService)

	// Initialize Gin router.
	r := gin.Default()

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}

	controller.RegisterRoutes(r, cfg,
		authService, userService, flashcardService,
		categoryService, sessionService, analyticsService, reportService)

	// Start server on the host and port specified in the XML config.
	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("MEMNEO", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("MEMNEO API (v%s)\n\n", "1.0.0")
}
