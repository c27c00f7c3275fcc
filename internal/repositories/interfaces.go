package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned by repositories when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err means the record does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// Repository groups the data access for quizzes and their attempts.
type Repository interface {
	Quiz() QuizRepository
	Attempt() AttemptRepository

	// WithTransaction runs fn against a repository bound to one database
	// transaction. Returning an error rolls it back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	IsActive  *bool  `json:"is_active"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "created_at", "title", "attempt_count"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type AttemptFilters struct {
	Completed *bool  `json:"completed"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "submitted_at", "percentage", "participant_name"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

// NormalizeSortOrder maps anything but "asc" to "desc".
func NormalizeSortOrder(order string) string {
	if strings.EqualFold(order, "asc") {
		return "asc"
	}
	return "desc"
}
