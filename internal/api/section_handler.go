package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/service"
	"github.com/knowledge-base-api/internal/validation"
	"github.com/rs/zerolog"
)

// SectionHandler handles section endpoints
type SectionHandler struct {
	services  *service.Services
	validator *validation.Validator
	log       zerolog.Logger
}

// NewSectionHandler creates a new SectionHandler
func NewSectionHandler(services *service.Services, validator *validation.Validator, log zerolog.Logger) *SectionHandler {
	return &SectionHandler{
		services:  services,
		validator: validator,
		log:       log.With().Str("handler", "section").Logger(),
	}
}

// List handles GET /api/sections
func (h *SectionHandler) List(c *gin.Context) {
	sections, err := h.services.Section.List(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// Get handles GET /api/sections/:id
func (h *SectionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	section, err := h.services.Section.Get(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// ListContent handles GET /api/sections/:id/content. Anonymous callers
// see published items only.
func (h *SectionHandler) ListContent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.services.Content.ListBySection(c.Request.Context(), id, !canSeeUnpublished(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": items})
}

// Create handles POST /api/sections
func (h *SectionHandler) Create(c *gin.Context) {
	var input models.SectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := h.validator.ValidateSection(&input); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	section, err := h.services.Section.Create(c.Request.Context(), &input)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

// Update handles PUT /api/sections/:id
func (h *SectionHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input models.SectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := h.validator.ValidateSection(&input); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	section, err := h.services.Section.Update(c.Request.Context(), id, &input)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// Delete handles DELETE /api/sections/:id
func (h *SectionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Section.Delete(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reorder handles PUT /api/sections/:id/reorder, swapping display
// positions with another section
func (h *SectionHandler) Reorder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input struct {
		OtherID int64 `json:"other_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.OtherID == 0 {
		badRequest(c, "other_id is required")
		return
	}

	if err := h.services.Section.Reorder(c.Request.Context(), id, input.OtherID); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pathID parses a numeric path parameter, writing a 400 on failure
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
