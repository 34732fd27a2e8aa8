package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knowledge-base-api/internal/service"
	"github.com/knowledge-base-api/internal/validation"
)

// serviceError maps service-layer sentinel errors onto the HTTP
// taxonomy. Unknown errors become 500 without leaking their text.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrQueryTooShort), errors.Is(err, service.ErrAlreadyAtEdge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// validationFailed writes the standard 400 payload for invalid input
func validationFailed(c *gin.Context, errs []validation.ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "validation failed",
		"fields": errs,
	})
}

// badRequest writes a plain 400
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
