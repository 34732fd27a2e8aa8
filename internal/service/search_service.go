package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/knowledge-base-api/internal/config"
	"github.com/knowledge-base-api/internal/container"
	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/repository"
	"github.com/rs/zerolog"
)

// searchService is the concrete implementation of SearchService
type searchService struct {
	search  repository.SearchRepository
	minLen  int
	snipLen int
	log     zerolog.Logger
}

// newSearchService creates a new SearchService
func newSearchService(search repository.SearchRepository, cfg *config.Config, log zerolog.Logger) *searchService {
	return &searchService{
		search:  search,
		minLen:  cfg.Search.MinQueryLength,
		snipLen: cfg.Search.SnippetLength,
		log:     log.With().Str("service", "search").Logger(),
	}
}

// Search finds content matching the query and returns snippeted,
// linkable results
func (s *searchService) Search(ctx context.Context, query string, publishedOnly bool) ([]*models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < s.minLen {
		return nil, fmt.Errorf("%w: need at least %d characters", ErrQueryTooShort, s.minLen)
	}

	items, err := s.search.Search(ctx, query, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("searching content: %w", err)
	}

	results := make([]*models.SearchResult, 0, len(items))
	for _, item := range items {
		results = append(results, &models.SearchResult{
			ContentID:     item.ID,
			Title:         item.Title,
			Snippet:       s.snippet(item, query),
			SectionName:   item.SectionName,
			ContainerType: item.ContainerType,
			URL:           fmt.Sprintf("/%s#item-%d", models.Slugify(item.SectionName), item.ID),
		})
	}

	s.log.Debug().Str("query", query).Int("results", len(results)).Msg("Search completed")
	return results, nil
}

// snippet extracts a short window of display text around the first
// match. When the match only occurred in the title or description, the
// snippet is the start of the body text instead.
func (s *searchService) snippet(item *models.ContentItem, query string) string {
	body := container.FlattenText(item.ContentMap())
	if body == "" {
		body = item.Description
	}

	lower := strings.ToLower(body)
	pos := strings.Index(lower, strings.ToLower(query))

	start := 0
	if pos > s.snipLen/2 {
		start = pos - s.snipLen/2
	}
	end := start + s.snipLen
	if end > len(body) {
		end = len(body)
	}

	snippet := strings.TrimSpace(body[start:end])
	if start > 0 {
		snippet = "…" + snippet
	}
	if end < len(body) {
		snippet += "…"
	}
	return snippet
}
