package models

import "github.com/knowledge-base-api/internal/container"

// RenderedContent is a content item resolved to its display tree. When
// the item's own content is minimal and it has container instances,
// Multi is true and Containers holds one tree per instance in display
// order; otherwise Containers holds the single tree for the item.
type RenderedContent struct {
	ContentID     int64             `json:"content_id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Emoji         string            `json:"emoji"`
	SectionName   string            `json:"section_name"`
	ContainerType string            `json:"container_type"`
	Multi         bool              `json:"multi"`
	Containers    []*container.Node `json:"containers"`
}
