package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the base interface for all repositories. Read methods only
// ever return active (non-soft-deleted) records; Delete performs a soft
// delete. No unscoped accessor is exposed.
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// ProjectScopedRepository is a repository whose records belong to exactly one
// project. Scoped reads never cross project boundaries.
type ProjectScopedRepository[T any] interface {
	Repository[T]
	FindByIDForProject(ctx context.Context, projectID, id uuid.UUID) (*T, error)
	FindAllForProject(ctx context.Context, projectID uuid.UUID, filter Filter) ([]T, error)
	CountForProject(ctx context.Context, projectID uuid.UUID, filter Filter) (int64, error)
	DeleteForProject(ctx context.Context, projectID, id uuid.UUID) error
}

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
