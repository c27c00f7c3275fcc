package services

import (
	"github.com/SAP-F-2025/quiz-service/internal/analytics"
	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// ===== QUIZ REQUESTS =====

// CreateQuizRequest carries editor-supplied questions. Title and question
// presence are checked during normalisation so that messages stay per-field.
type CreateQuizRequest struct {
	Title      string                 `json:"title" validate:"max=200"`
	Difficulty models.QuizDifficulty  `json:"difficulty" validate:"omitempty,quiz_difficulty"`
	Questions  []models.QuestionInput `json:"questions" validate:"max=100"`
}

type UpdateQuizRequest struct {
	Title      string                 `json:"title" validate:"max=200"`
	Difficulty models.QuizDifficulty  `json:"difficulty" validate:"omitempty,quiz_difficulty"`
	Questions  []models.QuestionInput `json:"questions" validate:"max=100"`
}

type GenerateQuizRequest struct {
	Title             string                `json:"title" validate:"required,not_blank,max=200"`
	Difficulty        models.QuizDifficulty `json:"difficulty" validate:"omitempty,quiz_difficulty"`
	NumberOfQuestions int                   `json:"number_of_questions" validate:"required,min=1,max=50"`
	Prompt            string                `json:"prompt" validate:"required,not_blank,max=2000"`
}

// ===== RESPONSES =====

type GenerateQuizResponse struct {
	Quiz     *models.Quiz `json:"quiz"`
	Fallback bool         `json:"fallback"`
	Cached   bool         `json:"cached"`
}

// AnalyticsResponse wraps a snapshot with where it came from.
type AnalyticsResponse struct {
	QuizID uint                `json:"quiz_id"`
	Cached bool                `json:"cached"`
	Data   *analytics.Snapshot `json:"analytics"`
}
