package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/repository"
	"github.com/knowledge-base-api/internal/validation"
	"github.com/rs/zerolog"
)

// UserHandler handles admin user management endpoints
type UserHandler struct {
	users     repository.UserRepository
	validator *validation.Validator
	log       zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users repository.UserRepository, validator *validation.Validator, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: validator,
		log:       log.With().Str("handler", "user").Logger(),
	}
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, user := range users {
		out = append(out, gin.H{
			"id":            user.ID,
			"email":         user.Email,
			"name":          user.Name,
			"role":          user.Role,
			"content_count": user.ContentCount,
			"created_at":    user.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// UpdateRole handles PUT /api/users/:id
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input models.RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := h.validator.ValidateRole(&input); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	// an admin may not demote themselves, which would lock the system
	if claims := claimsFrom(c); claims.UserID == id && input.Role != models.RoleAdmin {
		badRequest(c, "cannot change your own role")
		return
	}

	if err := h.users.UpdateRole(c.Request.Context(), id, input.Role); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	h.log.Info().Int64("user_id", id).Str("role", input.Role).Msg("User role updated")
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if claims := claimsFrom(c); claims.UserID == id {
		badRequest(c, "cannot delete your own account")
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	h.log.Info().Int64("user_id", id).Msg("User deleted")
	c.Status(http.StatusNoContent)
}
