package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"catalog-backend/internal/domains/product/importer"
	"catalog-backend/internal/domains/product/model"
	"catalog-backend/internal/domains/product/service"
	"catalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ExportHandler struct {
	exports service.ExportService
}

func NewExportHandler(exports service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export - GET /api/v1/products/export?format=csv&fields=name,sku,brand
// Streams the rendered file as an attachment. Format defaults to xlsx; an
// empty fields list exports the default column set.
func (h *ExportHandler) Export(c *gin.Context) {
	format, err := importer.ParseFormat(c.DefaultQuery("format", "xlsx"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "EXP_415", "unsupported export format")
		return
	}

	var fields []string
	if raw := c.Query("fields"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(field); trimmed != "" {
				fields = append(fields, trimmed)
			}
		}
	}

	payload, err := h.exports.Export(c.Request.Context(), format, fields)
	if err != nil {
		if errors.Is(err, model.ErrUnsupportedFormat) {
			response.ErrorResponse(c, http.StatusBadRequest, "EXP_415", "unsupported export format")
			return
		}
		log.Error().Err(err).Msg("Export failed")
		response.ErrorResponse(c, http.StatusInternalServerError, "EXP_500", "export failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.FileName))
	c.Data(http.StatusOK, payload.ContentType, payload.Data)
}

// Columns - GET /api/v1/products/export/columns
// The column catalog backing the export field picker.
func (h *ExportHandler) Columns(c *gin.Context) {
	response.Success(c, http.StatusOK, h.exports.Columns())
}
