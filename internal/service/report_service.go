package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"memneo-backend/pkg/logging"
	"memneo-backend/utilities"
)

// ReportService renders a user's performance report as a PDF file under the
// reports directory and returns its path.
type ReportService interface {
	GenerateReport(userID uint) (string, error)
}

type reportService struct {
	analytics AnalyticsService
	outputDir string
}

func NewReportService(analytics AnalyticsService) ReportService {
	return &reportService{analytics: analytics, outputDir: "working/reports"}
}

// InitReportEventListeners regenerates a user's report whenever one of their
// study sessions finishes.
func InitReportEventListeners(analytics AnalyticsService) {
	utilities.GlobalEventBus.Subscribe(EventSessionFinished, func(data interface{}) {
		userID, ok := data.(uint)
		if !ok {
			logging.Warn("invalid user ID received for report generation")
			return
		}

		reportService := NewReportService(analytics)
		if _, err := reportService.GenerateReport(userID); err != nil {
			logging.Error("failed to generate report for user %d: %v", userID, err)
		}
	})
}

func (s *reportService) GenerateReport(userID uint) (string, error) {
	report, err := s.analytics.UserPerformanceReport(userID)
	if err != nil {
		return "", fmt.Errorf("failed to build report data: %w", err)
	}

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 16)
	pdf.AddPage()

	pdf.Cell(40, 10, fmt.Sprintf("Study Report - %s", report.User.Name))
	pdf.Ln(15)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Accuracy: %.1f%%", report.User.Accuracy))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Current streak: %d days", report.User.Streak))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Cards studied: %d", report.User.TotalCards))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Performance by category")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	if len(report.CategoryPerformance) == 0 {
		pdf.Cell(0, 8, "No study sessions recorded yet.")
		pdf.Ln(8)
	}
	for _, cp := range report.CategoryPerformance {
		line := fmt.Sprintf("%s - %d sessions, %.1f%% accuracy, %d min",
			cp.CategoryName, cp.SessionsCount, cp.AvgAccuracy, cp.TotalTime/60)
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Recent sessions")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	for _, session := range report.RecentSessions {
		line := fmt.Sprintf("%s - %d cards, %.1f%% accuracy",
			session.CreatedAt.Format("2006-01-02"), session.FlashcardsStudied, session.Accuracy)
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	outputPath := filepath.Join(s.outputDir, fmt.Sprintf("report_%d.pdf", userID))
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("failed to save PDF: %w", err)
	}

	logging.Info("generated performance report for user %d at %s", userID, outputPath)
	return outputPath, nil
}
