package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/repository"
	"github.com/rs/zerolog"
)

// exportService is the concrete implementation of ExportService. It
// streams knowledge base tables for backup without loading them into
// memory.
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// StreamSections streams sections in the specified format
func (s *exportService) StreamSections(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting sections export")
	stream := func(emit func(any) error) error {
		return s.repos.Section.StreamAll(ctx, func(section *models.Section) error {
			return emit(section)
		})
	}
	return s.streamRecords(w, "sections", format, stream)
}

// StreamContent streams content items in the specified format
func (s *exportService) StreamContent(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting content export")
	stream := func(emit func(any) error) error {
		return s.repos.Content.StreamAll(ctx, func(item *models.ContentItem) error {
			return emit(item)
		})
	}
	return s.streamRecords(w, "content", format, stream)
}

// StreamContainers streams container instances in the specified format
func (s *exportService) StreamContainers(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting containers export")
	stream := func(emit func(any) error) error {
		return s.repos.Container.StreamAll(ctx, func(instance *models.ContainerInstance) error {
			return emit(instance)
		})
	}
	return s.streamRecords(w, "containers", format, stream)
}

// streamRecords writes a record stream as NDJSON or a JSON array
func (s *exportService) streamRecords(w http.ResponseWriter, resource, format string, stream func(emit func(any) error) error) error {
	switch format {
	case "ndjson":
		return s.streamNDJSON(w, resource, stream)
	case "json":
		return s.streamJSON(w, resource, stream)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (s *exportService) streamNDJSON(w http.ResponseWriter, resource string, stream func(emit func(any) error) error) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.ndjson", resource))

	flusher, _ := w.(http.Flusher)
	count := 0

	err := stream(func(record any) error {
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		// flush periodically so large backups stream
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Str("resource", resource).Int("count", count).Msg("Export completed")
	return err
}

func (s *exportService) streamJSON(w http.ResponseWriter, resource string, stream func(emit func(any) error) error) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", resource))

	w.Write([]byte("["))
	first := true

	err := stream(func(record any) error {
		if !first {
			w.Write([]byte(","))
		}
		first = false

		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		w.Write(data)
		return nil
	})

	w.Write([]byte("]"))
	return err
}

// GetCount returns the record count for a resource
func (s *exportService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case "sections":
		sections, err := s.repos.Section.List(ctx)
		if err != nil {
			return 0, err
		}
		return len(sections), nil
	case "content":
		return s.repos.Content.Count(ctx)
	case "users":
		return s.repos.User.Count(ctx)
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}
