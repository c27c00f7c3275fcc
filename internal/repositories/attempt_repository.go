package repositories

import (
	"context"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// AttemptRepository interface for quiz attempt operations
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	GetByID(ctx context.Context, id uint) (*models.QuizAttempt, error)

	// ListByQuiz returns one page of attempts and the total matching count.
	ListByQuiz(ctx context.Context, quizID uint, filters AttemptFilters) ([]*models.QuizAttempt, int64, error)
	// GetAllByQuiz returns every attempt of a quiz, newest submission first.
	GetAllByQuiz(ctx context.Context, quizID uint) ([]*models.QuizAttempt, error)

	DeleteByQuiz(ctx context.Context, quizID uint) error
}
