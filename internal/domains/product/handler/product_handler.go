package handler

import (
	"errors"
	"net/http"
	"strconv"

	"catalog-backend/internal/domains/product/model"
	"catalog-backend/internal/domains/product/service"
	"catalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{service: svc}
}

// Create - POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req model.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "PRD_001", "invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// List - GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	filter := &model.ListFilter{
		Search: c.Query("search"),
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}

	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.CategoryID = &id
		}
	}
	if raw := c.Query("archived"); raw != "" {
		archived := raw == "true" || raw == "1"
		filter.Archived = &archived
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{
		Limit: filter.Limit,
		Total: total,
	})
}

// GetByID - GET /api/v1/products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "PRD_002", "invalid product id")
		return
	}

	product, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// Update - PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "PRD_002", "invalid product id")
		return
	}

	var req model.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "PRD_001", "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// SetArchived - PATCH /api/v1/products/:id/archive
func (h *ProductHandler) SetArchived(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "PRD_002", "invalid product id")
		return
	}

	var req struct {
		Archived bool `json:"archived"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "PRD_001", "invalid request body")
		return
	}

	if err := h.service.SetArchived(c.Request.Context(), id, req.Archived); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "archived": req.Archived})
}

// Delete - DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "PRD_002", "invalid product id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *ProductHandler) mapError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	case errors.Is(err, model.ErrProductNotFound):
		response.ErrorResponse(c, http.StatusNotFound, "PRD_404", "product not found")
	case errors.Is(err, model.ErrDuplicateSKU):
		response.ErrorResponse(c, http.StatusConflict, "PRD_409", "sku already exists")
	case errors.Is(err, model.ErrInvalidID):
		response.ErrorResponse(c, http.StatusBadRequest, "PRD_002", "invalid product id")
	case errors.As(err, &validationErrs):
		response.ErrorResponse(c, http.StatusBadRequest, "PRD_003", err.Error())
	default:
		log.Error().Err(err).Msg("Product handler error")
		response.ErrorResponse(c, http.StatusInternalServerError, "PRD_500", "internal error")
	}
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
