package model

import "time"

// ImportOptions controls how an import run treats matched and unmatched rows.
type ImportOptions struct {
	// UpdateExisting merges matched rows into the stored record. When false,
	// matched rows are counted as skipped.
	UpdateExisting bool `json:"updateExisting"`

	// CreateMissingCategories resolves unknown category names via
	// get-or-create instead of leaving the product uncategorized.
	CreateMissingCategories bool `json:"createMissingCategories"`

	// StopOnError aborts the run at the first row that fails to persist.
	// The default records the error and continues with the next row.
	StopOnError bool `json:"stopOnError"`

	// PreserveArchiveStatus keeps the stored archive flag on updates even
	// when the file carries an archive/active column.
	PreserveArchiveStatus bool `json:"preserveArchiveStatus"`

	// BatchSize is the chunk size for persistence; 0 means the configured
	// default.
	BatchSize int `json:"batchSize"`
}

// DefaultImportOptions matches the behaviour of an import started without an
// options payload.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		UpdateExisting:          true,
		CreateMissingCategories: true,
	}
}

// ImportRowError ties a persistence or validation failure to its source row.
// Row numbers are 1-based positions in the data section of the file, header
// excluded.
type ImportRowError struct {
	Row     int    `json:"row"`
	Name    string `json:"name,omitempty"`
	SKU     string `json:"sku,omitempty"`
	Message string `json:"message"`
}

// ImportResult is the outcome of one import run.
type ImportResult struct {
	TotalProcessed int              `json:"totalProcessed"`
	InsertedCount  int              `json:"insertedCount"`
	UpdatedCount   int              `json:"updatedCount"`
	SkippedCount   int              `json:"skippedCount"`
	ErrorCount     int              `json:"errorCount"`
	Errors         []ImportRowError `json:"errors,omitempty"`
	BatchCount     int              `json:"batchCount"`
	ElapsedMs      int64            `json:"elapsedMs"`

	// Success reports whether the run changed the catalog: at least one row
	// inserted or updated, and no file-level failure (unreadable payload,
	// unsupported format, row limit). Row-level errors alone do not clear it.
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Import job lifecycle states.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// ImportJob tracks an asynchronous import from upload to completion.
// The uploaded payload is staged on disk under the configured upload dir and
// removed once the job reaches a terminal state.
type ImportJob struct {
	ID         string        `json:"id"`
	FileName   string        `json:"fileName"`
	FilePath   string        `json:"-"`
	Status     string        `json:"status"`
	Options    ImportOptions `json:"options"`
	Result     *ImportResult `json:"result,omitempty"`
	Error      string        `json:"error,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	StartedAt  *time.Time    `json:"startedAt,omitempty"`
	FinishedAt *time.Time    `json:"finishedAt,omitempty"`
}
