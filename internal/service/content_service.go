package service

import (
	"context"
	"fmt"

	"github.com/knowledge-base-api/internal/container"
	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/repository"
	"github.com/rs/zerolog"
)

// contentService is the concrete implementation of ContentService
type contentService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newContentService creates a new ContentService
func newContentService(repos *repository.Repositories, log zerolog.Logger) *contentService {
	return &contentService{
		repos: repos,
		log:   log.With().Str("service", "content").Logger(),
	}
}

// Create adds a content item. The content body runs through the
// normalizer first, so whatever shape the client sent is stored in the
// canonical form of its container type.
func (s *contentService) Create(ctx context.Context, input *models.ContentItemInput, authorID int64) (*models.ContentItem, error) {
	section, err := s.repos.Section.GetByID(ctx, input.SectionID)
	if err != nil {
		return nil, fmt.Errorf("looking up section: %w", err)
	}
	if section == nil {
		return nil, fmt.Errorf("section %d: %w", input.SectionID, ErrNotFound)
	}

	containerType, content := normalizeContent(input.Content, input.ContainerType)

	orderIndex := 0
	if input.OrderIndex != nil {
		orderIndex = *input.OrderIndex
	} else {
		orderIndex, err = s.repos.Content.NextOrderIndex(ctx, input.SectionID)
		if err != nil {
			return nil, fmt.Errorf("computing order index: %w", err)
		}
	}

	item := &models.ContentItem{
		Title:         input.Title,
		Description:   input.Description,
		SectionID:     input.SectionID,
		SectionName:   section.Name,
		Emoji:         input.Emoji,
		Content:       content,
		ContainerType: containerType,
		AuthorID:      authorID,
		Published:     input.Published != nil && *input.Published,
		OrderIndex:    orderIndex,
	}
	if err := s.repos.Content.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("creating content item: %w", err)
	}

	s.log.Info().
		Int64("content_id", item.ID).
		Str("container_type", item.ContainerType).
		Msg("Content item created")
	return item, nil
}

// Get retrieves one content item
func (s *contentService) Get(ctx context.Context, id int64) (*models.ContentItem, error) {
	item, err := s.repos.Content.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("content item %d: %w", id, ErrNotFound)
	}
	return item, nil
}

// ListBySection retrieves a section's items in display order
func (s *contentService) ListBySection(ctx context.Context, sectionID int64, publishedOnly bool) ([]*models.ContentItem, error) {
	section, err := s.repos.Section.GetByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, fmt.Errorf("section %d: %w", sectionID, ErrNotFound)
	}
	return s.repos.Content.ListBySection(ctx, sectionID, publishedOnly)
}

// List retrieves all items in section and display order
func (s *contentService) List(ctx context.Context, publishedOnly bool) ([]*models.ContentItem, error) {
	return s.repos.Content.List(ctx, publishedOnly)
}

// Update modifies a content item, re-normalizing its content body
func (s *contentService) Update(ctx context.Context, id int64, input *models.ContentItemInput) (*models.ContentItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SectionID != item.SectionID {
		section, err := s.repos.Section.GetByID(ctx, input.SectionID)
		if err != nil {
			return nil, fmt.Errorf("looking up section: %w", err)
		}
		if section == nil {
			return nil, fmt.Errorf("section %d: %w", input.SectionID, ErrNotFound)
		}
		item.SectionName = section.Name
	}

	containerType, content := normalizeContent(input.Content, input.ContainerType)

	item.Title = input.Title
	item.Description = input.Description
	item.SectionID = input.SectionID
	item.Emoji = input.Emoji
	item.Content = content
	item.ContainerType = containerType
	if input.Published != nil {
		item.Published = *input.Published
	}
	if input.OrderIndex != nil {
		item.OrderIndex = *input.OrderIndex
	}

	if err := s.repos.Content.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("updating content item: %w", err)
	}
	return item, nil
}

// Delete removes a content item and its container instances
func (s *contentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repos.Content.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting content item: %w", err)
	}
	s.log.Info().Int64("content_id", id).Msg("Content item deleted")
	return nil
}

// GetRendered resolves an item to its display tree. Items whose own
// content is minimal fall back to their ordered container instances,
// each rendered as an independent tree.
func (s *contentService) GetRendered(ctx context.Context, id int64) (*models.RenderedContent, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rendered := &models.RenderedContent{
		ContentID:     item.ID,
		Title:         item.Title,
		Description:   item.Description,
		Emoji:         item.Emoji,
		SectionName:   item.SectionName,
		ContainerType: item.ContainerType,
	}

	contentMap := item.ContentMap()
	if container.IsMinimal(contentMap) {
		instances, err := s.repos.Container.ListByContentItem(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("listing container instances: %w", err)
		}
		if len(instances) > 0 {
			rendered.Multi = true
			for _, instance := range instances {
				t, _ := container.ParseType(instance.ContainerType)
				rendered.Containers = append(rendered.Containers, container.Render(t, instance.ContentMap()))
			}
			return rendered, nil
		}
	}

	t, _ := container.ParseType(item.ContainerType)
	rendered.Containers = []*container.Node{container.Render(t, contentMap)}
	return rendered, nil
}
