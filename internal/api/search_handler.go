package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knowledge-base-api/internal/service"
	"github.com/rs/zerolog"
)

// SearchHandler handles the content search endpoint
type SearchHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(services *service.Services, log zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		services: services,
		log:      log.With().Str("handler", "search").Logger(),
	}
}

// Search handles GET /api/search?q=. Anonymous callers search
// published content only.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		badRequest(c, "q parameter is required")
		return
	}

	results, err := h.services.Search.Search(c.Request.Context(), query, !canSeeUnpublished(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}
