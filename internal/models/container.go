package models

import (
	"encoding/json"
	"time"
)

// ContainerInstance is an independently persisted container belonging
// to a content item. One item may stack several instances, displayed
// in order_index order.
type ContainerInstance struct {
	ID            int64           `json:"id" db:"id"`
	ContentItemID int64           `json:"content_item_id" db:"content_item_id"`
	ContainerType string          `json:"container_type" db:"container_type"`
	Content       json.RawMessage `json:"content" db:"content"`
	OrderIndex    int             `json:"order_index" db:"order_index"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// ContentMap decodes the raw content column into a generic map
func (c *ContainerInstance) ContentMap() map[string]any {
	return DecodeContent(c.Content)
}
