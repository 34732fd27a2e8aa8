package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/service"
	"github.com/knowledge-base-api/internal/validation"
	"github.com/rs/zerolog"
)

// AuthHandler handles account endpoints
type AuthHandler struct {
	services  *service.Services
	validator *validation.Validator
	log       zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, validator *validation.Validator, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services:  services,
		validator: validator,
		log:       log.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := h.validator.ValidateRegister(&input); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	// only an admin may grant elevated roles at creation time
	if input.Role != "" && input.Role != models.RoleUser {
		claims := claimsFrom(c)
		if claims == nil || claims.Role != models.RoleAdmin {
			input.Role = models.RoleUser
		}
	}

	user, token, err := h.services.Auth.Register(c.Request.Context(), &input)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user.Public(),
		"token": token,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := h.validator.ValidateLogin(&input); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	user, token, err := h.services.Auth.Login(c.Request.Context(), &input)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user.Public(),
		"token": token,
	})
}

// Verify handles GET /api/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	claims := claimsFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user": gin.H{
			"id":    claims.UserID,
			"email": claims.Email,
			"role":  claims.Role,
		},
	})
}
