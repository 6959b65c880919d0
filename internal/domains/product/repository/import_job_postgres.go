package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-backend/internal/domains/product/model"
	"catalog-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type importJobRepository struct {
	pool *pgxpool.Pool
}

func NewImportJobRepository(pool *pgxpool.Pool) ImportJobRepository {
	return &importJobRepository{pool: pool}
}

// Options and result snapshots live in jsonb columns; pgx maps the structs
// through encoding/json on both directions.
const importJobColumns = "id, file_name, file_path, status, options, result, error, created_at, started_at, finished_at"

func scanImportJob(row pgx.Row) (*model.ImportJob, error) {
	job := &model.ImportJob{}
	err := row.Scan(
		&job.ID,
		&job.FileName,
		&job.FilePath,
		&job.Status,
		&job.Options,
		&job.Result,
		&job.Error,
		&job.CreatedAt,
		&job.StartedAt,
		&job.FinishedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *importJobRepository) Create(ctx context.Context, job *model.ImportJob) error {
	const query = `
		INSERT INTO import_jobs (id, file_name, file_path, status, options, error, created_at)
		VALUES ($1, $2, $3, $4, $5, '', $6)
	`

	job.Status = model.JobStatusPending
	job.CreatedAt = time.Now()

	if _, err := r.pool.Exec(ctx, query, job.ID, job.FileName, job.FilePath, job.Status, job.Options, job.CreatedAt); err != nil {
		logger.Error("Create: failed to insert import job", err)
		return fmt.Errorf("failed to create import job: %w", err)
	}

	return nil
}

func (r *importJobRepository) GetByID(ctx context.Context, id string) (*model.ImportJob, error) {
	const query = `SELECT ` + importJobColumns + ` FROM import_jobs WHERE id = $1`

	job, err := scanImportJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrImportJobNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get import job: %w", err)
	}

	return job, nil
}

func (r *importJobRepository) List(ctx context.Context, limit int) ([]model.ImportJob, error) {
	const query = `SELECT ` + importJobColumns + ` FROM import_jobs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		logger.Error("List: query failed", err)
		return nil, fmt.Errorf("failed to list import jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.ImportJob, 0, limit)
	for rows.Next() {
		job, err := scanImportJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list import jobs: %w", err)
	}

	return jobs, nil
}

func (r *importJobRepository) MarkProcessing(ctx context.Context, id string) error {
	const query = `
		UPDATE import_jobs SET status = $1, started_at = $2
		WHERE id = $3 AND status = $4
	`

	tag, err := r.pool.Exec(ctx, query, model.JobStatusProcessing, time.Now(), id, model.JobStatusPending)
	if err != nil {
		logger.Error("MarkProcessing: database error", err)
		return fmt.Errorf("failed to mark import job processing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrImportJobNotFound
	}

	return nil
}

func (r *importJobRepository) MarkCompleted(ctx context.Context, id string, result *model.ImportResult) error {
	const query = `
		UPDATE import_jobs SET status = $1, result = $2, finished_at = $3
		WHERE id = $4
	`

	tag, err := r.pool.Exec(ctx, query, model.JobStatusCompleted, result, time.Now(), id)
	if err != nil {
		logger.Error("MarkCompleted: database error", err)
		return fmt.Errorf("failed to mark import job completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrImportJobNotFound
	}

	return nil
}

func (r *importJobRepository) MarkFailed(ctx context.Context, id string, message string) error {
	const query = `
		UPDATE import_jobs SET status = $1, error = $2, finished_at = $3
		WHERE id = $4
	`

	tag, err := r.pool.Exec(ctx, query, model.JobStatusFailed, message, time.Now(), id)
	if err != nil {
		logger.Error("MarkFailed: database error", err)
		return fmt.Errorf("failed to mark import job failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrImportJobNotFound
	}

	return nil
}

// PurgeOlderThan removes terminal jobs finished before the cutoff. Pending
// and processing jobs are never touched.
func (r *importJobRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `
		DELETE FROM import_jobs
		WHERE status IN ($1, $2) AND finished_at < $3
	`

	tag, err := r.pool.Exec(ctx, query, model.JobStatusCompleted, model.JobStatusFailed, cutoff)
	if err != nil {
		logger.Error("PurgeOlderThan: database error", err)
		return 0, fmt.Errorf("failed to purge import jobs: %w", err)
	}

	return tag.RowsAffected(), nil
}
