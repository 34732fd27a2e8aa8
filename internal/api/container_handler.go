package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/service"
	"github.com/knowledge-base-api/internal/validation"
	"github.com/rs/zerolog"
)

// ContainerHandler handles container instance endpoints
type ContainerHandler struct {
	services  *service.Services
	validator *validation.Validator
	log       zerolog.Logger
}

// NewContainerHandler creates a new ContainerHandler
func NewContainerHandler(services *service.Services, validator *validation.Validator, log zerolog.Logger) *ContainerHandler {
	return &ContainerHandler{
		services:  services,
		validator: validator,
		log:       log.With().Str("handler", "container").Logger(),
	}
}

// List handles GET /api/content/:id/containers
func (h *ContainerHandler) List(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	instances, err := h.services.Container.List(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"containers": instances})
}

// Create handles POST /api/content/:id/containers
func (h *ContainerHandler) Create(c *gin.Context) {
	itemID, ok := h.authorizedItem(c)
	if !ok {
		return
	}
	var input models.ContainerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := h.validator.ValidateContainer(&input); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	instance, err := h.services.Container.Create(c.Request.Context(), itemID, &input)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, instance)
}

// Update handles PUT /api/content/:id/containers/:containerId
func (h *ContainerHandler) Update(c *gin.Context) {
	itemID, ok := h.authorizedItem(c)
	if !ok {
		return
	}
	containerID, ok := pathID(c, "containerId")
	if !ok {
		return
	}
	var input models.ContainerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := h.validator.ValidateContainer(&input); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	instance, err := h.services.Container.Update(c.Request.Context(), itemID, containerID, &input)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, instance)
}

// Delete handles DELETE /api/content/:id/containers/:containerId
func (h *ContainerHandler) Delete(c *gin.Context) {
	itemID, ok := h.authorizedItem(c)
	if !ok {
		return
	}
	containerID, ok := pathID(c, "containerId")
	if !ok {
		return
	}
	if err := h.services.Container.Delete(c.Request.Context(), itemID, containerID); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Move handles POST /api/content/:id/containers/:containerId/move
func (h *ContainerHandler) Move(c *gin.Context) {
	itemID, ok := h.authorizedItem(c)
	if !ok {
		return
	}
	containerID, ok := pathID(c, "containerId")
	if !ok {
		return
	}
	var input struct {
		Direction string `json:"direction"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if input.Direction != "up" && input.Direction != "down" {
		badRequest(c, "direction must be up or down")
		return
	}

	if err := h.services.Container.Move(c.Request.Context(), itemID, containerID, input.Direction); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// authorizedItem parses the item ID and enforces that the caller is
// the item's author or an admin. Editors may not restructure another
// author's container stack.
func (h *ContainerHandler) authorizedItem(c *gin.Context) (int64, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return 0, false
	}
	item, err := h.services.Content.Get(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return 0, false
	}
	claims := claimsFrom(c)
	if claims.Role != models.RoleAdmin && claims.UserID != item.AuthorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the author or an admin may modify containers"})
		return 0, false
	}
	return id, true
}
