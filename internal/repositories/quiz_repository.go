package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// QuizRepository interface for quiz operations
type QuizRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uint) error

	// Query operations
	ListByCreator(ctx context.Context, creatorID string, filters QuizFilters) ([]*models.Quiz, int64, error)

	// Access codes are stored upper-case
	GetByAccessCode(ctx context.Context, code string) (*models.Quiz, error)
	AccessCodeExists(ctx context.Context, code string) (bool, error)

	// RecordAttempt bumps attempt_count and stamps last_attempt_at.
	RecordAttempt(ctx context.Context, quizID uint, at time.Time) error
}
