package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/knowledge-base-api/internal/database"
	"github.com/knowledge-base-api/internal/models"
)

// containerRepo is the concrete implementation of ContainerRepository
type containerRepo struct {
	db *database.DB
}

// NewContainerRepo creates a new container instance repository
func NewContainerRepo(db *database.DB) ContainerRepository {
	return &containerRepo{db: db}
}

// Create inserts a new container instance and fills in the generated ID
func (r *containerRepo) Create(ctx context.Context, instance *models.ContainerInstance) error {
	query := `
		INSERT INTO content_container_instances
			(content_item_id, container_type, content, order_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		instance.ContentItemID, instance.ContainerType, contentOrEmpty(instance.Content),
		instance.OrderIndex, now,
	).Scan(&instance.ID, &instance.CreatedAt, &instance.UpdatedAt)
}

// GetByID retrieves a container instance by ID
func (r *containerRepo) GetByID(ctx context.Context, id int64) (*models.ContainerInstance, error) {
	query := `
		SELECT id, content_item_id, container_type, content, order_index, created_at, updated_at
		FROM content_container_instances WHERE id = $1
	`
	var instance models.ContainerInstance
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&instance.ID, &instance.ContentItemID, &instance.ContainerType, &instance.Content,
		&instance.OrderIndex, &instance.CreatedAt, &instance.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// ListByContentItem retrieves an item's container instances in display
// order
func (r *containerRepo) ListByContentItem(ctx context.Context, contentItemID int64) ([]*models.ContainerInstance, error) {
	query := `
		SELECT id, content_item_id, container_type, content, order_index, created_at, updated_at
		FROM content_container_instances
		WHERE content_item_id = $1
		ORDER BY order_index, id
	`
	rows, err := r.db.QueryContext(ctx, query, contentItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instances []*models.ContainerInstance
	for rows.Next() {
		var instance models.ContainerInstance
		err := rows.Scan(
			&instance.ID, &instance.ContentItemID, &instance.ContainerType, &instance.Content,
			&instance.OrderIndex, &instance.CreatedAt, &instance.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		instances = append(instances, &instance)
	}
	return instances, rows.Err()
}

// Update modifies a container instance's type, content and position
func (r *containerRepo) Update(ctx context.Context, instance *models.ContainerInstance) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE content_container_instances
		SET container_type = $1, content = $2, order_index = $3, updated_at = $4
		WHERE id = $5
	`, instance.ContainerType, contentOrEmpty(instance.Content), instance.OrderIndex, time.Now(), instance.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// UpdateOrder sets an instance's position within its content item
func (r *containerRepo) UpdateOrder(ctx context.Context, id int64, orderIndex int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE content_container_instances SET order_index = $1, updated_at = $2 WHERE id = $3",
		orderIndex, time.Now(), id,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// Delete removes a container instance
func (r *containerRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM content_container_instances WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// NextOrderIndex returns the order index for an instance appended to an
// item
func (r *containerRepo) NextOrderIndex(ctx context.Context, contentItemID int64) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(order_index), -1) + 1 FROM content_container_instances WHERE content_item_id = $1",
		contentItemID,
	).Scan(&next)
	return next, err
}

// StreamAll streams all container instances for export
func (r *containerRepo) StreamAll(ctx context.Context, callback func(*models.ContainerInstance) error) error {
	query := `
		SELECT id, content_item_id, container_type, content, order_index, created_at, updated_at
		FROM content_container_instances
		ORDER BY content_item_id, order_index, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var instance models.ContainerInstance
		err := rows.Scan(
			&instance.ID, &instance.ContentItemID, &instance.ContainerType, &instance.Content,
			&instance.OrderIndex, &instance.CreatedAt, &instance.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if err := callback(&instance); err != nil {
			return err
		}
	}
	return rows.Err()
}
