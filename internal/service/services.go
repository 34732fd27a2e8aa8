// Package service implements the business operations of the knowledge
// base on top of the repository layer.
package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/knowledge-base-api/internal/auth"
	"github.com/knowledge-base-api/internal/config"
	"github.com/knowledge-base-api/internal/container"
	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/repository"
	"github.com/rs/zerolog"
)

// Sentinel errors mapped to HTTP statuses by the handlers
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("already exists")
	ErrForbidden      = errors.New("forbidden")
	ErrQueryTooShort  = errors.New("query too short")
	ErrAlreadyAtEdge  = errors.New("already at edge of list")
	ErrBadCredentials = auth.ErrInvalidCredentials
)

// AuthService defines the interface for account operations
type AuthService interface {
	Register(ctx context.Context, input *models.RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, input *models.LoginInput) (*models.User, string, error)
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// SectionService defines the interface for section operations
type SectionService interface {
	Create(ctx context.Context, input *models.SectionInput) (*models.Section, error)
	Get(ctx context.Context, id int64) (*models.Section, error)
	List(ctx context.Context) ([]*models.Section, error)
	Update(ctx context.Context, id int64, input *models.SectionInput) (*models.Section, error)
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, id, otherID int64) error
}

// ContentService defines the interface for content item operations
type ContentService interface {
	Create(ctx context.Context, input *models.ContentItemInput, authorID int64) (*models.ContentItem, error)
	Get(ctx context.Context, id int64) (*models.ContentItem, error)
	ListBySection(ctx context.Context, sectionID int64, publishedOnly bool) ([]*models.ContentItem, error)
	List(ctx context.Context, publishedOnly bool) ([]*models.ContentItem, error)
	Update(ctx context.Context, id int64, input *models.ContentItemInput) (*models.ContentItem, error)
	Delete(ctx context.Context, id int64) error
	GetRendered(ctx context.Context, id int64) (*models.RenderedContent, error)
}

// ContainerService defines the interface for container instance
// operations
type ContainerService interface {
	Create(ctx context.Context, contentItemID int64, input *models.ContainerInput) (*models.ContainerInstance, error)
	List(ctx context.Context, contentItemID int64) ([]*models.ContainerInstance, error)
	Update(ctx context.Context, contentItemID, containerID int64, input *models.ContainerInput) (*models.ContainerInstance, error)
	Delete(ctx context.Context, contentItemID, containerID int64) error
	Move(ctx context.Context, contentItemID, containerID int64, direction string) error
}

// SearchService defines the interface for content search
type SearchService interface {
	Search(ctx context.Context, query string, publishedOnly bool) ([]*models.SearchResult, error)
}

// ExportService defines the interface for the streaming backup export
type ExportService interface {
	StreamSections(ctx context.Context, w http.ResponseWriter, format string) error
	StreamContent(ctx context.Context, w http.ResponseWriter, format string) error
	StreamContainers(ctx context.Context, w http.ResponseWriter, format string) error
	GetCount(ctx context.Context, resource string) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Auth      AuthService
	Section   SectionService
	Content   ContentService
	Container ContainerService
	Search    SearchService
	Export    ExportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost, cfg.Auth.MinPasswordLength)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	return &Services{
		Auth:      newAuthService(repos.User, hasher, tokens, log),
		Section:   newSectionService(repos.Section, log),
		Content:   newContentService(repos, log),
		Container: newContainerService(repos, log),
		Search:    newSearchService(repos.Search, cfg, log),
		Export:    newExportService(repos, log),
	}
}

// normalizeContent loads a content payload into an editing draft and
// marshals it back, so everything persisted has passed through the
// same repair step the editor applies on load
func normalizeContent(raw []byte, declaredType string) (string, []byte) {
	hint, _ := container.ParseType(declaredType)
	draft := container.LoadDraft(raw, hint)
	return string(draft.Type()), draft.MarshalContent()
}
