package repository

import (
	"context"

	"github.com/knowledge-base-api/internal/database"
	"github.com/knowledge-base-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, id int64, role string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// SectionRepository defines the interface for section data operations
type SectionRepository interface {
	Create(ctx context.Context, section *models.Section) error
	GetByID(ctx context.Context, id int64) (*models.Section, error)
	List(ctx context.Context) ([]*models.Section, error)
	Update(ctx context.Context, section *models.Section) error
	UpdateOrder(ctx context.Context, id int64, orderIndex int) error
	Delete(ctx context.Context, id int64) error
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	NextOrderIndex(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Section) error) error
}

// ContentRepository defines the interface for content item operations
type ContentRepository interface {
	Create(ctx context.Context, item *models.ContentItem) error
	GetByID(ctx context.Context, id int64) (*models.ContentItem, error)
	ListBySection(ctx context.Context, sectionID int64, publishedOnly bool) ([]*models.ContentItem, error)
	List(ctx context.Context, publishedOnly bool) ([]*models.ContentItem, error)
	Update(ctx context.Context, item *models.ContentItem) error
	UpdateOrder(ctx context.Context, id int64, orderIndex int) error
	Delete(ctx context.Context, id int64) error
	NextOrderIndex(ctx context.Context, sectionID int64) (int, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.ContentItem) error) error
}

// ContainerRepository defines the interface for container instance
// operations
type ContainerRepository interface {
	Create(ctx context.Context, instance *models.ContainerInstance) error
	GetByID(ctx context.Context, id int64) (*models.ContainerInstance, error)
	ListByContentItem(ctx context.Context, contentItemID int64) ([]*models.ContainerInstance, error)
	Update(ctx context.Context, instance *models.ContainerInstance) error
	UpdateOrder(ctx context.Context, id int64, orderIndex int) error
	Delete(ctx context.Context, id int64) error
	NextOrderIndex(ctx context.Context, contentItemID int64) (int, error)
	StreamAll(ctx context.Context, callback func(*models.ContainerInstance) error) error
}

// SearchRepository defines the interface for content search
type SearchRepository interface {
	Search(ctx context.Context, query string, publishedOnly bool) ([]*models.ContentItem, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User      UserRepository
	Section   SectionRepository
	Content   ContentRepository
	Container ContainerRepository
	Search    SearchRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepo(db),
		Section:   NewSectionRepo(db),
		Content:   NewContentRepo(db),
		Container: NewContainerRepo(db),
		Search:    NewSearchRepo(db),
	}
}
