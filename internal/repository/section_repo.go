package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/knowledge-base-api/internal/database"
	"github.com/knowledge-base-api/internal/models"
)

// sectionRepo is the concrete implementation of SectionRepository
type sectionRepo struct {
	db *database.DB
}

// NewSectionRepo creates a new section repository
func NewSectionRepo(db *database.DB) SectionRepository {
	return &sectionRepo{db: db}
}

// Create inserts a new section and fills in the generated ID
func (r *sectionRepo) Create(ctx context.Context, section *models.Section) error {
	query := `
		INSERT INTO sections (name, description, emoji, order_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		section.Name, section.Description, section.Emoji, section.OrderIndex, now,
	).Scan(&section.ID, &section.CreatedAt, &section.UpdatedAt)
}

// GetByID retrieves a section by ID with its content count
func (r *sectionRepo) GetByID(ctx context.Context, id int64) (*models.Section, error) {
	query := `
		SELECT s.id, s.name, s.description, s.emoji, s.order_index, s.created_at, s.updated_at,
		       COUNT(c.id) AS content_count
		FROM sections s
		LEFT JOIN content_items c ON c.section_id = s.id
		WHERE s.id = $1
		GROUP BY s.id
	`
	var section models.Section
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&section.ID, &section.Name, &section.Description, &section.Emoji,
		&section.OrderIndex, &section.CreatedAt, &section.UpdatedAt, &section.ContentCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// List retrieves all sections in display order with content counts
func (r *sectionRepo) List(ctx context.Context) ([]*models.Section, error) {
	query := `
		SELECT s.id, s.name, s.description, s.emoji, s.order_index, s.created_at, s.updated_at,
		       COUNT(c.id) AS content_count
		FROM sections s
		LEFT JOIN content_items c ON c.section_id = s.id
		GROUP BY s.id
		ORDER BY s.order_index, s.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*models.Section
	for rows.Next() {
		var section models.Section
		err := rows.Scan(
			&section.ID, &section.Name, &section.Description, &section.Emoji,
			&section.OrderIndex, &section.CreatedAt, &section.UpdatedAt, &section.ContentCount,
		)
		if err != nil {
			return nil, err
		}
		sections = append(sections, &section)
	}
	return sections, rows.Err()
}

// Update modifies a section's editable fields
func (r *sectionRepo) Update(ctx context.Context, section *models.Section) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE sections
		SET name = $1, description = $2, emoji = $3, order_index = $4, updated_at = $5
		WHERE id = $6
	`, section.Name, section.Description, section.Emoji, section.OrderIndex, time.Now(), section.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// UpdateOrder sets a section's position in the display order
func (r *sectionRepo) UpdateOrder(ctx context.Context, id int64, orderIndex int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE sections SET order_index = $1, updated_at = $2 WHERE id = $3",
		orderIndex, time.Now(), id,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// Delete removes a section; its content items cascade
func (r *sectionRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sections WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// NameExists checks if another section already uses a name
func (r *sectionRepo) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM sections WHERE name = $1 AND id <> $2)", name, excludeID,
	).Scan(&exists)
	return exists, err
}

// NextOrderIndex returns the order index for a newly appended section
func (r *sectionRepo) NextOrderIndex(ctx context.Context) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(order_index), -1) + 1 FROM sections",
	).Scan(&next)
	return next, err
}

// StreamAll streams all sections for export
func (r *sectionRepo) StreamAll(ctx context.Context, callback func(*models.Section) error) error {
	query := `
		SELECT id, name, description, emoji, order_index, created_at, updated_at
		FROM sections ORDER BY order_index, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var section models.Section
		err := rows.Scan(
			&section.ID, &section.Name, &section.Description, &section.Emoji,
			&section.OrderIndex, &section.CreatedAt, &section.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if err := callback(&section); err != nil {
			return err
		}
	}
	return rows.Err()
}
