package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"catalog-backend/internal/config"
	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/product/importer"
	"catalog-backend/internal/domains/product/model"
	"catalog-backend/internal/domains/product/repository"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// taskEnqueuer is the slice of *asynq.Client the import service needs.
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type importService struct {
	products   repository.ProductRepository
	jobs       repository.ImportJobRepository
	categories category.Service
	queue      taskEnqueuer
	cfg        config.ImportConfig
}

func NewImportService(
	products repository.ProductRepository,
	jobs repository.ImportJobRepository,
	categories category.Service,
	queue taskEnqueuer,
	cfg config.ImportConfig,
) ImportService {
	return &importService{
		products:   products,
		jobs:       jobs,
		categories: categories,
		queue:      queue,
		cfg:        cfg,
	}
}

// ImportFile is the synchronous import entry point: detect the format, parse
// every row, then reconcile the rows against the catalog in chunks.
func (s *importService) ImportFile(ctx context.Context, filename string, r io.Reader, opts model.ImportOptions) *model.ImportResult {
	started := time.Now()
	result := &model.ImportResult{Success: true}

	format, err := importer.DetectFormat(filename)
	if err != nil {
		return s.failFile(result, started, filename, err)
	}

	parsed, skipped, err := importer.Parse(format, r)
	if err != nil {
		return s.failFile(result, started, filename, err)
	}

	if s.cfg.MaxRows > 0 && len(parsed)+skipped > s.cfg.MaxRows {
		return s.failFile(result, started, filename, model.ErrTooManyRows)
	}

	result.SkippedCount = skipped
	s.reconcile(ctx, parsed, opts, result)
	if result.ErrorMessage == "" {
		// A run that wrote nothing is not a success, even without errors.
		result.Success = result.InsertedCount > 0 || result.UpdatedCount > 0
	}
	result.ElapsedMs = time.Since(started).Milliseconds()

	log.Info().
		Str("file", filename).
		Int("processed", result.TotalProcessed).
		Int("inserted", result.InsertedCount).
		Int("updated", result.UpdatedCount).
		Int("skipped", result.SkippedCount).
		Int("errors", result.ErrorCount).
		Int("batches", result.BatchCount).
		Int64("elapsed_ms", result.ElapsedMs).
		Msg("Import finished")

	return result
}

func (s *importService) failFile(result *model.ImportResult, started time.Time, filename string, err error) *model.ImportResult {
	result.Success = false
	result.ErrorMessage = err.Error()
	result.ElapsedMs = time.Since(started).Milliseconds()
	log.Warn().Err(err).Str("file", filename).Msg("Import rejected")
	return result
}

// reconcile matches parsed rows against a catalog snapshot and persists them
// chunk by chunk. Each chunk is one transaction; cancellation is honoured at
// chunk boundaries so an aborted request never tears a chunk in half.
func (s *importService) reconcile(ctx context.Context, parsed []importer.ParsedRow, opts model.ImportOptions, result *model.ImportResult) {
	if len(parsed) == 0 {
		return
	}

	existing, err := s.products.GetAll(ctx)
	if err != nil {
		result.Success = false
		result.ErrorMessage = fmt.Sprintf("failed to load catalog snapshot: %v", err)
		return
	}
	index := importer.NewIndex(existing)

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = s.cfg.DefaultBatchSize
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	categoryIDs := make(map[string]int64)
	stopped := false

	for start := 0; start < len(parsed) && !stopped; start += batchSize {
		if ctx.Err() != nil {
			result.Success = false
			result.ErrorMessage = "import cancelled"
			return
		}

		end := min(start+batchSize, len(parsed))
		chunk := parsed[start:end]
		result.BatchCount++

		err := s.products.WithinChunk(ctx, func(ops repository.ChunkOps) error {
			for _, row := range chunk {
				if stop := s.importRow(ctx, ops, index, categoryIDs, row, opts, result); stop {
					// Rows already written in this chunk still commit.
					stopped = true
					return nil
				}
			}
			return nil
		})
		if err != nil {
			result.Success = false
			result.ErrorMessage = fmt.Sprintf("failed to persist batch %d: %v", result.BatchCount, err)
			return
		}

		// Yield between chunks so long imports do not starve the scheduler.
		runtime.Gosched()
	}
}

// importRow reconciles one parsed row. Returns true when the run must stop.
func (s *importService) importRow(
	ctx context.Context,
	ops repository.ChunkOps,
	index *importer.Index,
	categoryIDs map[string]int64,
	row importer.ParsedRow,
	opts model.ImportOptions,
	result *model.ImportResult,
) bool {
	draft := row.Product
	result.TotalProcessed++

	s.resolveRowCategory(ctx, draft, opts, categoryIDs)

	match := index.Match(draft)
	if match == nil {
		draft.Normalize()
		created, err := ops.Insert(ctx, draft)
		if err != nil {
			recordRowError(result, row, err)
			return opts.StopOnError
		}
		result.InsertedCount++
		index.Add(created)
		return false
	}

	if !opts.UpdateExisting {
		result.SkippedCount++
		return false
	}

	merged := importer.Merge(*match, *draft, opts)
	merged.Normalize()
	updated, err := ops.Update(ctx, &merged)
	if err != nil {
		recordRowError(result, row, err)
		return opts.StopOnError
	}
	result.UpdatedCount++

	// Keep the index view current so later rows merge against this update.
	*match = *updated
	return false
}

// resolveRowCategory fills the draft's category id from its category name,
// memoizing lookups for the run. Failures leave the product uncategorized
// rather than failing the row.
func (s *importService) resolveRowCategory(ctx context.Context, draft *model.Product, opts model.ImportOptions, categoryIDs map[string]int64) {
	name := strings.TrimSpace(draft.CategoryName)
	if name == "" || draft.CategoryID != nil {
		return
	}

	key := strings.ToLower(utils.FoldTurkish(name))
	if id, ok := categoryIDs[key]; ok {
		draft.CategoryID = &id
		return
	}

	var id int64
	var err error
	if opts.CreateMissingCategories {
		id, err = s.categories.GetOrCreate(ctx, name)
	} else {
		id, err = s.categories.FindIDByName(ctx, name)
	}
	if err != nil {
		if !errors.Is(err, category.ErrCategoryNotFound) {
			log.Warn().Err(err).Str("category", name).Msg("Failed to resolve category during import")
		}
		return
	}

	categoryIDs[key] = id
	draft.CategoryID = &id
}

func recordRowError(result *model.ImportResult, row importer.ParsedRow, err error) {
	result.ErrorCount++
	result.Errors = append(result.Errors, model.ImportRowError{
		Row:     row.Row,
		Name:    row.Product.Name,
		SKU:     row.Product.SKU,
		Message: err.Error(),
	})
}

// EnqueueImport stages the payload under the upload dir and queues a job for
// the worker. The staged file is removed once the job reaches a terminal
// state.
func (s *importService) EnqueueImport(ctx context.Context, filename string, r io.Reader, opts model.ImportOptions) (*model.ImportJob, error) {
	if _, err := importer.DetectFormat(filename); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare upload dir: %w", err)
	}

	jobID := uuid.NewString()
	stagedPath := filepath.Join(s.cfg.UploadDir, jobID+strings.ToLower(filepath.Ext(filename)))

	staged, err := os.Create(stagedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	if _, err := io.Copy(staged, r); err != nil {
		staged.Close()
		os.Remove(stagedPath)
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	if err := staged.Close(); err != nil {
		os.Remove(stagedPath)
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}

	job := &model.ImportJob{
		ID:       jobID,
		FileName: filename,
		FilePath: stagedPath,
		Options:  opts,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		os.Remove(stagedPath)
		return nil, err
	}

	payload, err := json.Marshal(shared.ProductImportPayload{JobID: jobID})
	if err != nil {
		_ = s.jobs.MarkFailed(ctx, jobID, "failed to build task payload")
		os.Remove(stagedPath)
		return nil, fmt.Errorf("failed to build task payload: %w", err)
	}

	task := asynq.NewTask(shared.TaskProductImport, payload)
	if _, err := s.queue.EnqueueContext(ctx, task, asynq.MaxRetry(3), asynq.Timeout(30*time.Minute)); err != nil {
		_ = s.jobs.MarkFailed(ctx, jobID, "failed to enqueue import task")
		os.Remove(stagedPath)
		return nil, fmt.Errorf("failed to enqueue import task: %w", err)
	}

	log.Info().Str("job_id", jobID).Str("file", filename).Msg("Import job queued")
	return job, nil
}

func (s *importService) GetJob(ctx context.Context, id string) (*model.ImportJob, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrImportJobNotFound
	}
	return s.jobs.GetByID(ctx, id)
}

func (s *importService) ListJobs(ctx context.Context, limit int) ([]model.ImportJob, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.jobs.List(ctx, limit)
}

// RunJob executes one queued job. Returning an error makes asynq retry, so
// unrecoverable conditions (missing file, already-processed job) mark the
// job failed and return nil instead.
func (s *importService) RunJob(ctx context.Context, jobID string) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, model.ErrImportJobNotFound) {
			log.Warn().Str("job_id", jobID).Msg("Import job vanished before processing")
			return nil
		}
		return err
	}

	if job.Status != model.JobStatusPending {
		log.Warn().Str("job_id", jobID).Str("status", job.Status).Msg("Skipping import job in non-pending state")
		return nil
	}

	if err := s.jobs.MarkProcessing(ctx, jobID); err != nil {
		return err
	}

	staged, err := os.Open(job.FilePath)
	if err != nil {
		return s.jobs.MarkFailed(ctx, jobID, fmt.Sprintf("staged file unavailable: %v", err))
	}

	result := s.ImportFile(ctx, job.FileName, staged, job.Options)
	staged.Close()
	if err := os.Remove(job.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("job_id", jobID).Msg("Failed to remove staged import file")
	}

	// Only file-level failures fail the job; a run that merely wrote nothing
	// completes with its result attached.
	if result.ErrorMessage != "" {
		return s.jobs.MarkFailed(ctx, jobID, result.ErrorMessage)
	}
	return s.jobs.MarkCompleted(ctx, jobID, result)
}

// PurgeExpiredJobs drops terminal jobs older than the retention window.
// Scheduled from the worker's cron loop.
func (s *importService) PurgeExpiredJobs(ctx context.Context) (int64, error) {
	retention := s.cfg.JobRetentionDays
	if retention <= 0 {
		retention = 30
	}

	cutoff := time.Now().AddDate(0, 0, -retention)
	purged, err := s.jobs.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if purged > 0 {
		log.Info().Int64("purged", purged).Time("cutoff", cutoff).Msg("Purged expired import jobs")
	}
	return purged, nil
}
