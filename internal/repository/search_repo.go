package repository

import (
	"context"

	"github.com/knowledge-base-api/internal/database"
	"github.com/knowledge-base-api/internal/models"
)

// searchRepo is the concrete implementation of SearchRepository
type searchRepo struct {
	db *database.DB
}

// NewSearchRepo creates a new search repository
func NewSearchRepo(db *database.DB) SearchRepository {
	return &searchRepo{db: db}
}

// Search finds content items whose title, description, or content body
// matches the query, case-insensitively. Matching against the JSONB
// column as text casts a wide net on purpose; the service layer
// re-checks matches when it extracts snippets.
func (r *searchRepo) Search(ctx context.Context, query string, publishedOnly bool) ([]*models.ContentItem, error) {
	sqlQuery := `
		SELECT ` + contentColumns + `, s.name
		FROM content_items c
		JOIN sections s ON s.id = c.section_id
		WHERE ($2 = false OR c.published = true)
		  AND (c.title ILIKE $1 OR c.description ILIKE $1 OR c.content::text ILIKE $1)
		ORDER BY s.order_index, c.order_index, c.id
	`
	rows, err := r.db.QueryContext(ctx, sqlQuery, "%"+query+"%", publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.SectionID, &item.Emoji, &item.Content,
			&item.ContainerType, &item.AuthorID, &item.Published, &item.OrderIndex,
			&item.CreatedAt, &item.UpdatedAt, &item.SectionName,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
