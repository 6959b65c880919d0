package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"catalog-backend/internal/domains/product/model"
	"catalog-backend/internal/domains/product/service"
	"catalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ImportHandler struct {
	imports service.ImportService
}

func NewImportHandler(imports service.ImportService) *ImportHandler {
	return &ImportHandler{imports: imports}
}

// Import - POST /api/v1/products/import
// Multipart upload: "file" is the payload, the optional "options" field is an
// ImportOptions JSON document. Runs synchronously and returns the result.
func (h *ImportHandler) Import(c *gin.Context) {
	file, filename, opts, ok := h.readUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	result := h.imports.ImportFile(c.Request.Context(), filename, file, opts)
	if !result.Success {
		response.ErrorWithDetails(c, http.StatusBadRequest, "IMP_400", result.ErrorMessage, result)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ImportAsync - POST /api/v1/products/import/async
// Same upload contract as Import; stages the file and returns the queued job.
func (h *ImportHandler) ImportAsync(c *gin.Context) {
	file, filename, opts, ok := h.readUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	job, err := h.imports.EnqueueImport(c.Request.Context(), filename, file, opts)
	if err != nil {
		if errors.Is(err, model.ErrUnsupportedFormat) {
			response.ErrorResponse(c, http.StatusBadRequest, "IMP_415", "unsupported file format")
			return
		}
		log.Error().Err(err).Msg("Failed to enqueue import")
		response.ErrorResponse(c, http.StatusInternalServerError, "IMP_500", "failed to queue import")
		return
	}

	response.Success(c, http.StatusAccepted, job)
}

// GetJob - GET /api/v1/products/import/jobs/:id
func (h *ImportHandler) GetJob(c *gin.Context) {
	job, err := h.imports.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, model.ErrImportJobNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, "IMP_404", "import job not found")
			return
		}
		log.Error().Err(err).Msg("Failed to load import job")
		response.ErrorResponse(c, http.StatusInternalServerError, "IMP_500", "internal error")
		return
	}

	response.Success(c, http.StatusOK, job)
}

// ListJobs - GET /api/v1/products/import/jobs
func (h *ImportHandler) ListJobs(c *gin.Context) {
	jobs, err := h.imports.ListJobs(c.Request.Context(), parseIntQuery(c, "limit", 20))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list import jobs")
		response.ErrorResponse(c, http.StatusInternalServerError, "IMP_500", "internal error")
		return
	}

	response.Success(c, http.StatusOK, jobs)
}

// readUpload pulls the multipart file and options out of the request. On
// failure it writes the error response and returns ok=false.
func (h *ImportHandler) readUpload(c *gin.Context) (multipart.File, string, model.ImportOptions, bool) {
	opts := model.DefaultImportOptions()

	header, err := c.FormFile("file")
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "IMP_001", "missing file upload")
		return nil, "", opts, false
	}

	upload, err := header.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		response.ErrorResponse(c, http.StatusInternalServerError, "IMP_500", "failed to read upload")
		return nil, "", opts, false
	}

	if raw := c.PostForm("options"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts); err != nil {
			upload.Close()
			response.ErrorResponse(c, http.StatusBadRequest, "IMP_002", "invalid options payload")
			return nil, "", opts, false
		}
	}

	return upload, header.Filename, opts, true
}
