package models

import (
	"strings"
	"time"
)

// Section is a top-level grouping of content items
type Section struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Emoji        string    `json:"emoji" db:"emoji"`
	OrderIndex   int       `json:"order_index" db:"order_index"`
	ContentCount int       `json:"content_count" db:"-"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Slug converts the section name into its URL path segment.
// "Health & Safety" becomes "health-and-safety".
func (s *Section) Slug() string {
	return Slugify(s.Name)
}

// Slugify lowercases a name, collapses whitespace to dashes and
// spells out ampersands
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, "&", "and")
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
