package service

import (
	"context"
	"fmt"

	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/repository"
	"github.com/rs/zerolog"
)

// sectionService is the concrete implementation of SectionService
type sectionService struct {
	sections repository.SectionRepository
	log      zerolog.Logger
}

// newSectionService creates a new SectionService
func newSectionService(sections repository.SectionRepository, log zerolog.Logger) *sectionService {
	return &sectionService{
		sections: sections,
		log:      log.With().Str("service", "section").Logger(),
	}
}

// Create adds a section; without an explicit order index it is appended
// at the end of the display order
func (s *sectionService) Create(ctx context.Context, input *models.SectionInput) (*models.Section, error) {
	taken, err := s.sections.NameExists(ctx, input.Name, 0)
	if err != nil {
		return nil, fmt.Errorf("checking section name: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("section %q: %w", input.Name, ErrDuplicate)
	}

	orderIndex := 0
	if input.OrderIndex != nil {
		orderIndex = *input.OrderIndex
	} else {
		orderIndex, err = s.sections.NextOrderIndex(ctx)
		if err != nil {
			return nil, fmt.Errorf("computing order index: %w", err)
		}
	}

	section := &models.Section{
		Name:        input.Name,
		Description: input.Description,
		Emoji:       input.Emoji,
		OrderIndex:  orderIndex,
	}
	if err := s.sections.Create(ctx, section); err != nil {
		return nil, fmt.Errorf("creating section: %w", err)
	}

	s.log.Info().Int64("section_id", section.ID).Str("name", section.Name).Msg("Section created")
	return section, nil
}

// Get retrieves one section
func (s *sectionService) Get(ctx context.Context, id int64) (*models.Section, error) {
	section, err := s.sections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, fmt.Errorf("section %d: %w", id, ErrNotFound)
	}
	return section, nil
}

// List retrieves all sections in display order
func (s *sectionService) List(ctx context.Context) ([]*models.Section, error) {
	return s.sections.List(ctx)
}

// Update modifies a section's fields
func (s *sectionService) Update(ctx context.Context, id int64, input *models.SectionInput) (*models.Section, error) {
	section, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.sections.NameExists(ctx, input.Name, id)
	if err != nil {
		return nil, fmt.Errorf("checking section name: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("section %q: %w", input.Name, ErrDuplicate)
	}

	section.Name = input.Name
	section.Description = input.Description
	section.Emoji = input.Emoji
	if input.OrderIndex != nil {
		section.OrderIndex = *input.OrderIndex
	}
	if err := s.sections.Update(ctx, section); err != nil {
		return nil, fmt.Errorf("updating section: %w", err)
	}
	return section, nil
}

// Delete removes a section and, through the schema, its content
func (s *sectionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.sections.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting section: %w", err)
	}
	s.log.Info().Int64("section_id", id).Msg("Section deleted")
	return nil
}

// Reorder swaps the display positions of two sections. The two updates
// run independently, not in a transaction; a failure between them can
// leave one section moved. Acceptable for a manual curation operation.
func (s *sectionService) Reorder(ctx context.Context, id, otherID int64) error {
	first, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	second, err := s.Get(ctx, otherID)
	if err != nil {
		return err
	}

	// capture both indexes up front: the repository may hand back live
	// records, so the first update must not feed into the second
	firstIdx, secondIdx := first.OrderIndex, second.OrderIndex

	if err := s.sections.UpdateOrder(ctx, first.ID, secondIdx); err != nil {
		return fmt.Errorf("reordering section %d: %w", first.ID, err)
	}
	if err := s.sections.UpdateOrder(ctx, second.ID, firstIdx); err != nil {
		return fmt.Errorf("reordering section %d: %w", second.ID, err)
	}
	return nil
}
