package category

import (
	"context"
)

// Service is the business-logic contract for categories.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	GetAll(ctx context.Context, filter *Filter) ([]Category, int64, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Category, error)
	Delete(ctx context.Context, id int64) error

	// GetOrCreate resolves a category id by name, creating the category when
	// it does not exist yet. Consumed by the import merge path.
	GetOrCreate(ctx context.Context, name string) (int64, error)

	// FindIDByName resolves a category id by name without creating anything.
	// Returns ErrCategoryNotFound on a miss.
	FindIDByName(ctx context.Context, name string) (int64, error)
}
