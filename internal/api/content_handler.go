package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/service"
	"github.com/knowledge-base-api/internal/validation"
	"github.com/rs/zerolog"
)

// ContentHandler handles content item endpoints
type ContentHandler struct {
	services  *service.Services
	validator *validation.Validator
	log       zerolog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(services *service.Services, validator *validation.Validator, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		services:  services,
		validator: validator,
		log:       log.With().Str("handler", "content").Logger(),
	}
}

// List handles GET /api/content. Anonymous callers see published items
// only.
func (h *ContentHandler) List(c *gin.Context) {
	items, err := h.services.Content.List(c.Request.Context(), !canSeeUnpublished(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": items})
}

// Get handles GET /api/content/:id
func (h *ContentHandler) Get(c *gin.Context) {
	item, ok := h.visibleItem(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetRendered handles GET /api/content/:id/rendered, returning the
// item resolved to its display tree
func (h *ContentHandler) GetRendered(c *gin.Context) {
	item, ok := h.visibleItem(c)
	if !ok {
		return
	}
	rendered, err := h.services.Content.GetRendered(c.Request.Context(), item.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rendered)
}

// Create handles POST /api/content
func (h *ContentHandler) Create(c *gin.Context) {
	var input models.ContentItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := h.validator.ValidateContentItem(&input); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	item, err := h.services.Content.Create(c.Request.Context(), &input, claimsFrom(c).UserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/content/:id
func (h *ContentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input models.ContentItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := h.validator.ValidateContentItem(&input); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	item, err := h.services.Content.Update(c.Request.Context(), id, &input)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/content/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Content.Delete(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// visibleItem loads the item from the path and enforces published
// visibility for anonymous callers. Hidden items read as missing.
func (h *ContentHandler) visibleItem(c *gin.Context) (*models.ContentItem, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}
	item, err := h.services.Content.Get(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return nil, false
	}
	if !item.Published && !canSeeUnpublished(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "content item not found"})
		return nil, false
	}
	return item, true
}
