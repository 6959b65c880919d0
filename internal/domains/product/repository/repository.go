package repository

import (
	"context"
	"time"

	"catalog-backend/internal/domains/product/model"
)

// ProductRepository is the persistence contract for catalog products.
type ProductRepository interface {
	// GetAll returns the full catalog snapshot, used to build the import
	// match index and to feed exports.
	GetAll(ctx context.Context) ([]model.Product, error)
	List(ctx context.Context, filter *model.ListFilter) ([]model.Product, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) (*model.Product, error)
	SetArchived(ctx context.Context, id int64, archived bool) error
	Delete(ctx context.Context, id int64) error

	// WithinChunk runs fn inside one transaction; row writes made through
	// the ChunkOps are savepoint-isolated so a failing row can be recorded
	// without poisoning the rest of the chunk.
	WithinChunk(ctx context.Context, fn func(ops ChunkOps) error) error
}

// ChunkOps are the row-level writes available inside an import chunk.
type ChunkOps interface {
	Insert(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) (*model.Product, error)
}

// ImportJobRepository tracks asynchronous import jobs.
type ImportJobRepository interface {
	Create(ctx context.Context, job *model.ImportJob) error
	GetByID(ctx context.Context, id string) (*model.ImportJob, error)
	List(ctx context.Context, limit int) ([]model.ImportJob, error)
	MarkProcessing(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id string, result *model.ImportResult) error
	MarkFailed(ctx context.Context, id string, message string) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
