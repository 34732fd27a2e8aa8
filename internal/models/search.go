package models

// SearchResult is one entry in a search response. URL points at the
// section page, anchored to the matching item.
type SearchResult struct {
	ContentID     int64  `json:"content_id"`
	Title         string `json:"title"`
	Snippet       string `json:"snippet"`
	SectionName   string `json:"section_name"`
	ContainerType string `json:"container_type"`
	URL           string `json:"url"`
}
