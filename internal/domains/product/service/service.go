package service

import (
	"context"
	"io"

	"catalog-backend/internal/domains/product/importer"
	"catalog-backend/internal/domains/product/model"
)

// ProductService is the business-logic contract for catalog products.
type ProductService interface {
	Create(ctx context.Context, req model.ProductRequest) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, filter *model.ListFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, id int64, req model.ProductRequest) (*model.Product, error)
	SetArchived(ctx context.Context, id int64, archived bool) error
	Delete(ctx context.Context, id int64) error
}

// ImportService runs file imports, synchronously or through queued jobs.
type ImportService interface {
	// ImportFile parses and reconciles an uploaded payload. The result is
	// always non-nil; file-level failures surface as Success=false while
	// row-level failures only raise the error counters.
	ImportFile(ctx context.Context, filename string, r io.Reader, opts model.ImportOptions) *model.ImportResult

	// EnqueueImport stages the payload on disk and queues a background job.
	EnqueueImport(ctx context.Context, filename string, r io.Reader, opts model.ImportOptions) (*model.ImportJob, error)
	GetJob(ctx context.Context, id string) (*model.ImportJob, error)
	ListJobs(ctx context.Context, limit int) ([]model.ImportJob, error)

	// RunJob executes a queued job; called from the worker.
	RunJob(ctx context.Context, jobID string) error

	// PurgeExpiredJobs removes terminal jobs past the retention window.
	PurgeExpiredJobs(ctx context.Context) (int64, error)
}

// ExportPayload is a rendered export file ready to stream to the client.
type ExportPayload struct {
	Data        []byte
	ContentType string
	FileName    string
}

// ExportService renders catalog snapshots in the supported formats.
type ExportService interface {
	Export(ctx context.Context, format importer.Format, fields []string) (*ExportPayload, error)
	Columns() []model.ExportColumn
}
