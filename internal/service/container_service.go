package service

import (
	"context"
	"fmt"

	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/repository"
	"github.com/rs/zerolog"
)

// containerService is the concrete implementation of ContainerService
type containerService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newContainerService creates a new ContainerService
func newContainerService(repos *repository.Repositories, log zerolog.Logger) *containerService {
	return &containerService{
		repos: repos,
		log:   log.With().Str("service", "container").Logger(),
	}
}

// Create appends a container instance to a content item, normalizing
// its content first
func (s *containerService) Create(ctx context.Context, contentItemID int64, input *models.ContainerInput) (*models.ContainerInstance, error) {
	if err := s.requireItem(ctx, contentItemID); err != nil {
		return nil, err
	}

	containerType, content := normalizeContent(input.Content, input.ContainerType)

	orderIndex := 0
	var err error
	if input.OrderIndex != nil {
		orderIndex = *input.OrderIndex
	} else {
		orderIndex, err = s.repos.Container.NextOrderIndex(ctx, contentItemID)
		if err != nil {
			return nil, fmt.Errorf("computing order index: %w", err)
		}
	}

	instance := &models.ContainerInstance{
		ContentItemID: contentItemID,
		ContainerType: containerType,
		Content:       content,
		OrderIndex:    orderIndex,
	}
	if err := s.repos.Container.Create(ctx, instance); err != nil {
		return nil, fmt.Errorf("creating container instance: %w", err)
	}

	s.log.Info().
		Int64("content_id", contentItemID).
		Int64("container_id", instance.ID).
		Str("container_type", instance.ContainerType).
		Msg("Container instance created")
	return instance, nil
}

// List retrieves an item's container instances in display order
func (s *containerService) List(ctx context.Context, contentItemID int64) ([]*models.ContainerInstance, error) {
	if err := s.requireItem(ctx, contentItemID); err != nil {
		return nil, err
	}
	return s.repos.Container.ListByContentItem(ctx, contentItemID)
}

// Update modifies a container instance's type and content
func (s *containerService) Update(ctx context.Context, contentItemID, containerID int64, input *models.ContainerInput) (*models.ContainerInstance, error) {
	instance, err := s.getOwned(ctx, contentItemID, containerID)
	if err != nil {
		return nil, err
	}

	containerType, content := normalizeContent(input.Content, input.ContainerType)
	instance.ContainerType = containerType
	instance.Content = content
	if input.OrderIndex != nil {
		instance.OrderIndex = *input.OrderIndex
	}

	if err := s.repos.Container.Update(ctx, instance); err != nil {
		return nil, fmt.Errorf("updating container instance: %w", err)
	}
	return instance, nil
}

// Delete removes a container instance
func (s *containerService) Delete(ctx context.Context, contentItemID, containerID int64) error {
	if _, err := s.getOwned(ctx, contentItemID, containerID); err != nil {
		return err
	}
	if err := s.repos.Container.Delete(ctx, containerID); err != nil {
		return fmt.Errorf("deleting container instance: %w", err)
	}
	s.log.Info().Int64("container_id", containerID).Msg("Container instance deleted")
	return nil
}

// Move shifts an instance one position up or down by swapping order
// indexes with its neighbor. The two updates run independently, not in
// a transaction, matching the section reorder semantics.
func (s *containerService) Move(ctx context.Context, contentItemID, containerID int64, direction string) error {
	if direction != "up" && direction != "down" {
		return fmt.Errorf("unknown move direction %q", direction)
	}

	instances, err := s.List(ctx, contentItemID)
	if err != nil {
		return err
	}

	position := -1
	for i, instance := range instances {
		if instance.ID == containerID {
			position = i
			break
		}
	}
	if position == -1 {
		return fmt.Errorf("container instance %d: %w", containerID, ErrNotFound)
	}

	neighbor := position - 1
	if direction == "down" {
		neighbor = position + 1
	}
	if neighbor < 0 || neighbor >= len(instances) {
		return ErrAlreadyAtEdge
	}

	current, other := instances[position], instances[neighbor]

	// stacked instances can share an order index; fall back to list
	// positions so the swap is still observable
	currentIdx, otherIdx := current.OrderIndex, other.OrderIndex
	if currentIdx == otherIdx {
		currentIdx, otherIdx = position, neighbor
	}

	if err := s.repos.Container.UpdateOrder(ctx, current.ID, otherIdx); err != nil {
		return fmt.Errorf("moving container %d: %w", current.ID, err)
	}
	if err := s.repos.Container.UpdateOrder(ctx, other.ID, currentIdx); err != nil {
		return fmt.Errorf("moving container %d: %w", other.ID, err)
	}
	return nil
}

func (s *containerService) requireItem(ctx context.Context, contentItemID int64) error {
	item, err := s.repos.Content.GetByID(ctx, contentItemID)
	if err != nil {
		return fmt.Errorf("looking up content item: %w", err)
	}
	if item == nil {
		return fmt.Errorf("content item %d: %w", contentItemID, ErrNotFound)
	}
	return nil
}

func (s *containerService) getOwned(ctx context.Context, contentItemID, containerID int64) (*models.ContainerInstance, error) {
	instance, err := s.repos.Container.GetByID(ctx, containerID)
	if err != nil {
		return nil, err
	}
	if instance == nil || instance.ContentItemID != contentItemID {
		return nil, fmt.Errorf("container instance %d: %w", containerID, ErrNotFound)
	}
	return instance, nil
}
