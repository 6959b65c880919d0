package shared

// Asynq task types shared between the API (producer) and the worker
// (consumer).
const (
	TaskProductImport = "product:import"
)

// ProductImportPayload is the asynq payload for a queued import job.
type ProductImportPayload struct {
	JobID string `json:"job_id"`
}
