package models

import (
	"encoding/json"
	"time"
)

// ContentItem is a single piece of content inside a section. The
// content column is free-form JSON whose expected shape depends on
// ContainerType; stored data may drift from that shape and is repaired
// by the container normalizer on write.
type ContentItem struct {
	ID            int64           `json:"id" db:"id"`
	Title         string          `json:"title" db:"title"`
	Description   string          `json:"description" db:"description"`
	SectionID     int64           `json:"section_id" db:"section_id"`
	SectionName   string          `json:"section_name,omitempty" db:"-"`
	Emoji         string          `json:"emoji" db:"emoji"`
	Content       json.RawMessage `json:"content" db:"content"`
	ContainerType string          `json:"container_type" db:"container_type"`
	AuthorID      int64           `json:"author_id" db:"author_id"`
	Published     bool            `json:"published" db:"published"`
	OrderIndex    int             `json:"order_index" db:"order_index"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// ContentMap decodes the raw content column into a generic map.
// Returns an empty map for null, invalid, or non-object content so
// callers never have to branch on decode failures.
func (c *ContentItem) ContentMap() map[string]any {
	return DecodeContent(c.Content)
}

// DecodeContent decodes raw JSON into a map, tolerating malformed input
func DecodeContent(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}
