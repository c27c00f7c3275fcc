package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db      *gorm.DB
	quiz    repositories.QuizRepository
	attempt repositories.AttemptRepository
}

// NewRepository wires the PostgreSQL implementations around db.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:      db,
		quiz:    NewQuizPostgreSQL(db),
		attempt: NewAttemptPostgreSQL(db),
	}
}

func (r *repository) Quiz() repositories.QuizRepository       { return r.quiz }
func (r *repository) Attempt() repositories.AttemptRepository { return r.attempt }

func (r *repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates the quiz tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Quiz{}, &models.QuizAttempt{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
