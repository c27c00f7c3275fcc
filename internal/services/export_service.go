package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/analytics"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	summarySheet   = "Summary"
	questionsSheet = "Questions"
	attemptsSheet  = "Attempts"
)

// ExportService renders quiz analytics as a downloadable workbook.
type ExportService interface {
	ExportAnalytics(ctx context.Context, quizID uint, userID string) (*models.ExportResult, error)
}

type exportService struct {
	repo      repositories.Repository
	analytics AnalyticsService
	logger    *ServiceLogger
	now       func() time.Time
}

func NewExportService(repo repositories.Repository, analyticsService AnalyticsService, logger *ServiceLogger) ExportService {
	return &exportService{
		repo:      repo,
		analytics: analyticsService,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *exportService) ExportAnalytics(ctx context.Context, quizID uint, userID string) (result *models.ExportResult, err error) {
	op := s.logger.WithOperation(ctx, "export_analytics", userID)
	defer func() { op.LogResult(quizID, "quiz", err) }()

	resp, err := s.analytics.GetQuizAnalytics(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.repo.Attempt().GetAllByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	data, err := buildAnalyticsWorkbook(resp.Data, attempts)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now()
	return &models.ExportResult{
		FileName:    exportFileName(resp.Data.QuizTitle, generatedAt),
		ContentType: xlsxContentType,
		Data:        data,
		GeneratedAt: generatedAt,
	}, nil
}

func buildAnalyticsWorkbook(snapshot *analytics.Snapshot, attempts []*models.QuizAttempt) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the summary.
	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if _, err := f.NewSheet(questionsSheet); err != nil {
		return nil, fmt.Errorf("failed to create questions sheet: %w", err)
	}
	if _, err := f.NewSheet(attemptsSheet); err != nil {
		return nil, fmt.Errorf("failed to create attempts sheet: %w", err)
	}

	if err := writeRows(f, summarySheet, summaryRows(snapshot)); err != nil {
		return nil, err
	}
	if err := writeRows(f, questionsSheet, questionRows(snapshot)); err != nil {
		return nil, err
	}
	if err := writeRows(f, attemptsSheet, attemptRows(attempts)); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func summaryRows(s *analytics.Snapshot) [][]interface{} {
	pm := s.PerformanceMetrics
	return [][]interface{}{
		{"Metric", "Value"},
		{"Quiz", s.QuizTitle},
		{"Total attempts", s.TotalAttempts},
		{"Total questions", pm.TotalQuestions},
		{"Average percentage", s.AveragePercentage},
		{"Highest score (%)", s.HighestScore},
		{"Lowest score (%)", s.LowestScore},
		{"Pass rate (%)", pm.PassRate},
		{"Excellent rate (%)", pm.ExcellentRate},
		{"Easy questions", pm.DifficultyDistribution.Easy},
		{"Medium questions", pm.DifficultyDistribution.Medium},
		{"Hard questions", pm.DifficultyDistribution.Hard},
	}
}

func questionRows(s *analytics.Snapshot) [][]interface{} {
	rows := [][]interface{}{{
		"#", "Question", "Correct answer", "Correct", "Responses", "Correct %",
		"Difficulty", "Discrimination", "Distractor effectiveness", "Reliability",
		"Unattempted", "Insight", "Recommendations",
	}}
	for _, q := range s.QuestionAnalytics {
		rows = append(rows, []interface{}{
			q.QuestionNumber,
			q.Question,
			q.CorrectAnswerText,
			q.CorrectCount,
			q.TotalResponses,
			q.CorrectPercentage,
			string(q.DifficultyLevel),
			q.Effectiveness.DiscriminationIndex,
			q.Effectiveness.DistractorEffectiveness,
			string(q.Effectiveness.QuestionReliability),
			q.UnattemptedCount,
			q.PerformanceInsight.Message,
			strings.Join(q.Recommendations, "\n"),
		})
	}
	return rows
}

func attemptRows(attempts []*models.QuizAttempt) [][]interface{} {
	rows := [][]interface{}{{"Participant", "Email", "Score", "Total questions", "Percentage", "Completed", "Submitted at"}}
	for _, a := range attempts {
		var email, submitted interface{}
		if a.ParticipantEmail != nil {
			email = *a.ParticipantEmail
		}
		if a.SubmittedAt != nil {
			submitted = a.SubmittedAt.UTC().Format(time.RFC3339)
		}
		rows = append(rows, []interface{}{
			a.DisplayName(),
			email,
			intOrNil(a.Score),
			a.TotalQuestions,
			intOrNil(a.Percentage),
			a.Completed,
			submitted,
		})
	}
	return rows
}

func intOrNil(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func exportFileName(title string, at time.Time) string {
	base := strings.Trim(unsafeFileChars.ReplaceAllString(title, "_"), "_")
	if base == "" {
		base = "quiz"
	}
	return fmt.Sprintf("%s_analytics_%s.xlsx", strings.ToLower(base), at.UTC().Format("20060102_150405"))
}
