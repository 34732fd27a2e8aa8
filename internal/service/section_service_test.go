package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/service"
)

func TestSectionCreateAppendsToOrder(t *testing.T) {
	h := newTestHarness(t)

	first := h.createSection(t, "Getting Started")
	second := h.createSection(t, "Health & Safety")

	if first.OrderIndex != 0 {
		t.Errorf("first OrderIndex = %d, want 0", first.OrderIndex)
	}
	if second.OrderIndex != 1 {
		t.Errorf("second OrderIndex = %d, want 1", second.OrderIndex)
	}
	if got := second.Slug(); got != "health-and-safety" {
		t.Errorf("Slug() = %q, want health-and-safety", got)
	}
}

func TestSectionDuplicateName(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	h.createSection(t, "Operations")
	_, err := h.services.Section.Create(ctx, &models.SectionInput{Name: "Operations"})
	if !errors.Is(err, service.ErrDuplicate) {
		t.Errorf("Create() error = %v, want ErrDuplicate", err)
	}
}

func TestSectionReorderSwapsPair(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	first := h.createSection(t, "A")
	second := h.createSection(t, "B")

	if err := h.services.Section.Reorder(ctx, first.ID, second.ID); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}

	sections, err := h.services.Section.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[0].Name != "B" || sections[1].Name != "A" {
		t.Errorf("order after swap = [%s, %s], want [B, A]", sections[0].Name, sections[1].Name)
	}
	// both indexes must actually swap; a half-applied swap leaves the
	// pair sharing one index
	if sections[0].OrderIndex != 0 || sections[1].OrderIndex != 1 {
		t.Errorf("indexes after swap = [%d, %d], want [0, 1]",
			sections[0].OrderIndex, sections[1].OrderIndex)
	}
}

func TestSectionNotFound(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	if _, err := h.services.Section.Get(ctx, 99); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if err := h.services.Section.Delete(ctx, 99); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
	if err := h.services.Section.Reorder(ctx, 1, 99); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Reorder() error = %v, want ErrNotFound", err)
	}
}
