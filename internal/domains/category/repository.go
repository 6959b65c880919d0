package category

import (
	"context"
)

// Repository is the data-access contract for categories.
type Repository interface {
	Create(ctx context.Context, entity *Category) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	GetAll(ctx context.Context, filter *Filter) ([]Category, int64, error)
	Update(ctx context.Context, entity *Category) (*Category, error)

	// Delete removes a category. Returns ErrCategoryInUse when products
	// still reference it.
	Delete(ctx context.Context, id int64) error

	// FindByName looks a category up by name, case-insensitive.
	FindByName(ctx context.Context, name string) (*Category, error)

	// CountProducts returns how many products reference the category.
	CountProducts(ctx context.Context, id int64) (int64, error)
}
