package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/knowledge-base-api/internal/database"
	"github.com/knowledge-base-api/internal/models"
)

// contentRepo is the concrete implementation of ContentRepository
type contentRepo struct {
	db *database.DB
}

// NewContentRepo creates a new content item repository
func NewContentRepo(db *database.DB) ContentRepository {
	return &contentRepo{db: db}
}

const contentColumns = `
	c.id, c.title, c.description, c.section_id, c.emoji, c.content,
	c.container_type, c.author_id, c.published, c.order_index,
	c.created_at, c.updated_at
`

// Create inserts a new content item and fills in the generated ID
func (r *contentRepo) Create(ctx context.Context, item *models.ContentItem) error {
	query := `
		INSERT INTO content_items
			(title, description, section_id, emoji, content, container_type,
			 author_id, published, order_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		item.Title, item.Description, item.SectionID, item.Emoji, contentOrEmpty(item.Content),
		item.ContainerType, item.AuthorID, item.Published, item.OrderIndex, now,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

// GetByID retrieves a content item by ID with its section name
func (r *contentRepo) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	query := `
		SELECT ` + contentColumns + `, s.name
		FROM content_items c
		JOIN sections s ON s.id = c.section_id
		WHERE c.id = $1
	`
	var item models.ContentItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Title, &item.Description, &item.SectionID, &item.Emoji, &item.Content,
		&item.ContainerType, &item.AuthorID, &item.Published, &item.OrderIndex,
		&item.CreatedAt, &item.UpdatedAt, &item.SectionName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListBySection retrieves a section's content items in display order
func (r *contentRepo) ListBySection(ctx context.Context, sectionID int64, publishedOnly bool) ([]*models.ContentItem, error) {
	query := `
		SELECT ` + contentColumns + `, s.name
		FROM content_items c
		JOIN sections s ON s.id = c.section_id
		WHERE c.section_id = $1 AND ($2 = false OR c.published = true)
		ORDER BY c.order_index, c.id
	`
	return r.queryItems(ctx, query, sectionID, publishedOnly)
}

// List retrieves all content items in section and display order
func (r *contentRepo) List(ctx context.Context, publishedOnly bool) ([]*models.ContentItem, error) {
	query := `
		SELECT ` + contentColumns + `, s.name
		FROM content_items c
		JOIN sections s ON s.id = c.section_id
		WHERE ($1 = false OR c.published = true)
		ORDER BY s.order_index, c.order_index, c.id
	`
	return r.queryItems(ctx, query, publishedOnly)
}

func (r *contentRepo) queryItems(ctx context.Context, query string, args ...any) ([]*models.ContentItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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

// Update modifies a content item's editable fields
func (r *contentRepo) Update(ctx context.Context, item *models.ContentItem) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE content_items
		SET title = $1, description = $2, section_id = $3, emoji = $4, content = $5,
		    container_type = $6, published = $7, order_index = $8, updated_at = $9
		WHERE id = $10
	`, item.Title, item.Description, item.SectionID, item.Emoji, contentOrEmpty(item.Content),
		item.ContainerType, item.Published, item.OrderIndex, time.Now(), item.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// UpdateOrder sets a content item's position within its section
func (r *contentRepo) UpdateOrder(ctx context.Context, id int64, orderIndex int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE content_items SET order_index = $1, updated_at = $2 WHERE id = $3",
		orderIndex, time.Now(), id,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// Delete removes a content item; its container instances cascade
func (r *contentRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM content_items WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// NextOrderIndex returns the order index for an item appended to a section
func (r *contentRepo) NextOrderIndex(ctx context.Context, sectionID int64) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(order_index), -1) + 1 FROM content_items WHERE section_id = $1",
		sectionID,
	).Scan(&next)
	return next, err
}

// Count returns the total number of content items
func (r *contentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content_items").Scan(&count)
	return count, err
}

// StreamAll streams all content items for export
func (r *contentRepo) StreamAll(ctx context.Context, callback func(*models.ContentItem) error) error {
	query := `
		SELECT ` + contentColumns + `
		FROM content_items c
		ORDER BY c.section_id, c.order_index, c.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ContentItem
		err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.SectionID, &item.Emoji, &item.Content,
			&item.ContainerType, &item.AuthorID, &item.Published, &item.OrderIndex,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if err := callback(&item); err != nil {
			return err
		}
	}
	return rows.Err()
}

// contentOrEmpty guards against writing NULL into the JSONB column
func contentOrEmpty(content []byte) []byte {
	if len(content) == 0 {
		return []byte(`{}`)
	}
	return content
}
