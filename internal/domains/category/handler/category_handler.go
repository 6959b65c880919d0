package handler

import (
	"errors"
	"net/http"
	"strconv"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create - POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "CAT_001", "invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// GetAll - GET /api/v1/categories
func (h *CategoryHandler) GetAll(c *gin.Context) {
	filter := &category.Filter{
		Search: c.Query("search"),
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}

	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	items, total, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{
		Limit: filter.Limit,
		Total: total,
	})
}

// GetByID - GET /api/v1/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "CAT_002", "invalid category id")
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, entity)
}

// Update - PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "CAT_002", "invalid category id")
		return
	}

	var req category.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "CAT_001", "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete - DELETE /api/v1/categories/:id
// Rejected with 409 when products still reference the category.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "CAT_002", "invalid category id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *CategoryHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, category.ErrCategoryNotFound):
		response.ErrorResponse(c, http.StatusNotFound, "CAT_404", "category not found")
	case errors.Is(err, category.ErrDuplicateName):
		response.ErrorResponse(c, http.StatusConflict, "CAT_409", "category name already exists")
	case errors.Is(err, category.ErrCategoryInUse):
		response.ErrorResponse(c, http.StatusConflict, "CAT_410", "category has referencing products")
	case errors.Is(err, category.ErrInvalidID):
		response.ErrorResponse(c, http.StatusBadRequest, "CAT_002", "invalid category id")
	default:
		log.Error().Err(err).Msg("Category handler error")
		response.ErrorResponse(c, http.StatusInternalServerError, "CAT_500", "internal error")
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
