package job

import (
	"context"
	"encoding/json"
	"fmt"

	"catalog-backend/internal/domains/product/service"
	"catalog-backend/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// ImportJobHandler consumes queued import tasks in the worker process.
type ImportJobHandler struct {
	imports service.ImportService
}

func NewImportJobHandler(imports service.ImportService) *ImportJobHandler {
	return &ImportJobHandler{imports: imports}
}

// HandleProductImport processes one queued import. A malformed payload is
// never retryable; job-level failures are recorded on the job row inside
// RunJob and do not bounce the task.
func (h *ImportJobHandler) HandleProductImport(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProductImportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid import payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Info().Str("job_id", payload.JobID).Msg("Processing import job")
	return h.imports.RunJob(ctx, payload.JobID)
}
