package models

import "encoding/json"

// RegisterInput is the payload for account creation
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

// LoginInput is the payload for credential login
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SectionInput is the payload for creating or updating a section
type SectionInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	OrderIndex  *int   `json:"order_index,omitempty"`
}

// ContentItemInput is the payload for creating or updating a content
// item. Content is passed through the container normalizer before it
// is persisted, so any shape is accepted here.
type ContentItemInput struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	SectionID     int64           `json:"section_id"`
	Emoji         string          `json:"emoji"`
	Content       json.RawMessage `json:"content"`
	ContainerType string          `json:"container_type"`
	Published     *bool           `json:"published,omitempty"`
	OrderIndex    *int            `json:"order_index,omitempty"`
}

// ContainerInput is the payload for creating or updating a container
// instance under a content item
type ContainerInput struct {
	ContainerType string          `json:"container_type"`
	Content       json.RawMessage `json:"content"`
	OrderIndex    *int            `json:"order_index,omitempty"`
}

// RoleInput is the payload for an admin role change
type RoleInput struct {
	Role string `json:"role"`
}
