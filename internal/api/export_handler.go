package api

import (
	"github.com/gin-gonic/gin"
	"github.com/knowledge-base-api/internal/service"
	"github.com/rs/zerolog"
)

// ExportHandler handles the streaming backup endpoint
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamExport handles GET /api/export?resource=...&format=...
// Streams the export directly to the response
func (h *ExportHandler) StreamExport(c *gin.Context) {
	ctx := c.Request.Context()

	resource := c.Query("resource")
	if resource == "" {
		badRequest(c, "resource parameter is required (sections, content, containers)")
		return
	}
	if resource != "sections" && resource != "content" && resource != "containers" {
		badRequest(c, "resource must be one of: sections, content, containers")
		return
	}

	format := c.Query("format")
	if format == "" {
		format = "ndjson"
	}
	if format != "ndjson" && format != "json" {
		badRequest(c, "format must be one of: ndjson, json")
		return
	}

	h.log.Info().
		Str("resource", resource).
		Str("format", format).
		Msg("Starting streaming export")

	var err error
	switch resource {
	case "sections":
		err = h.services.Export.StreamSections(ctx, c.Writer, format)
	case "content":
		err = h.services.Export.StreamContent(ctx, c.Writer, format)
	case "containers":
		err = h.services.Export.StreamContainers(ctx, c.Writer, format)
	}

	if err != nil {
		h.log.Error().Err(err).Str("resource", resource).Msg("Export failed")
		// too late for an error payload once streaming has started
		return
	}
}
