package postgres

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

// SharedHelpers holds query helpers reused by every PostgreSQL repository.
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyPaginationAndSort orders by sortBy when it is in allowed, falling back
// to fallback, then applies limit and offset.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int, allowed map[string]bool, fallback string) *gorm.DB {
	column := fallback
	if allowed[sortBy] {
		column = sortBy
	}
	query = query.Order(fmt.Sprintf("%s %s", column, repositories.NormalizeSortOrder(sortOrder)))
	// deterministic order between equal keys
	query = query.Order("id desc")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

// notFound maps gorm's missing-row error onto repositories.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return err
}
