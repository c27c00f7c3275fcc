package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

var quizSortColumns = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"title":         true,
	"attempt_count": true,
}

type QuizPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (q *QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	if err := q.db.WithContext(ctx).Create(quiz).Error; err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

func (q *QuizPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := q.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &quiz, nil
}

// Update writes only the editable columns so attempt bookkeeping is never
// clobbered by a stale read.
func (q *QuizPostgreSQL) Update(ctx context.Context, quiz *models.Quiz) error {
	result := q.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("id = ?", quiz.ID).
		Updates(map[string]interface{}{
			"title":           quiz.Title,
			"difficulty":      quiz.Difficulty,
			"questions":       quiz.Questions,
			"total_questions": quiz.TotalQuestions,
			"updated_at":      quiz.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update quiz: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (q *QuizPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := q.db.WithContext(ctx).Delete(&models.Quiz{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete quiz: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (q *QuizPostgreSQL) ListByCreator(ctx context.Context, creatorID string, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	var quizzes []*models.Quiz
	var total int64

	query := q.db.WithContext(ctx).Model(&models.Quiz{}).Where("created_by = ?", creatorID)
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = q.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder,
		filters.Limit, filters.Offset, quizSortColumns, "created_at")

	if err := query.Find(&quizzes).Error; err != nil {
		return nil, 0, err
	}
	return quizzes, total, nil
}

func (q *QuizPostgreSQL) GetByAccessCode(ctx context.Context, code string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := q.db.WithContext(ctx).
		Where("access_code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&quiz).Error; err != nil {
		return nil, notFound(err)
	}
	return &quiz, nil
}

func (q *QuizPostgreSQL) AccessCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := q.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("access_code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (q *QuizPostgreSQL) RecordAttempt(ctx context.Context, quizID uint, at time.Time) error {
	result := q.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("id = ?", quizID).
		UpdateColumns(map[string]interface{}{
			"attempt_count":   gorm.Expr("attempt_count + ?", 1),
			"last_attempt_at": at,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to record attempt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
