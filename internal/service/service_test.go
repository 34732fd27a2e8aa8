package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/knowledge-base-api/internal/config"
	"github.com/knowledge-base-api/internal/mocks"
	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/repository"
	"github.com/knowledge-base-api/internal/service"
	"github.com/rs/zerolog"
)

type testHarness struct {
	services      *service.Services
	userRepo      *mocks.MockUserRepository
	sectionRepo   *mocks.MockSectionRepository
	contentRepo   *mocks.MockContentRepository
	containerRepo *mocks.MockContainerRepository
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	userRepo := mocks.NewMockUserRepository()
	sectionRepo := mocks.NewMockSectionRepository()
	contentRepo := mocks.NewMockContentRepository()
	containerRepo := mocks.NewMockContainerRepository()

	repos := &repository.Repositories{
		User:      userRepo,
		Section:   sectionRepo,
		Content:   contentRepo,
		Container: containerRepo,
		Search:    mocks.NewMockSearchRepository(contentRepo),
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret",
			TokenTTL:          time.Hour,
			BcryptCost:        4,
			MinPasswordLength: 6,
		},
		Search: config.SearchConfig{
			MinQueryLength: 2,
			SnippetLength:  200,
		},
	}

	log := zerolog.Nop()
	services := service.NewServices(repos, cfg, log)

	return &testHarness{
		services:      services,
		userRepo:      userRepo,
		sectionRepo:   sectionRepo,
		contentRepo:   contentRepo,
		containerRepo: containerRepo,
	}
}

func (h *testHarness) createSection(t *testing.T, name string) *models.Section {
	t.Helper()
	section, err := h.services.Section.Create(context.Background(), &models.SectionInput{Name: name})
	if err != nil {
		t.Fatalf("creating section: %v", err)
	}
	return section
}

func (h *testHarness) createItem(t *testing.T, sectionID int64, title, containerType, content string) *models.ContentItem {
	t.Helper()
	item, err := h.services.Content.Create(context.Background(), &models.ContentItemInput{
		Title:         title,
		SectionID:     sectionID,
		ContainerType: containerType,
		Content:       json.RawMessage(content),
	}, 1)
	if err != nil {
		t.Fatalf("creating content item: %v", err)
	}
	return item
}
