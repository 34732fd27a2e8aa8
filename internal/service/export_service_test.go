package service_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExportSectionsNDJSON(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	h.createSection(t, "First")
	h.createSection(t, "Second")

	rec := httptest.NewRecorder()
	if err := h.services.Export.StreamSections(ctx, rec, "ndjson"); err != nil {
		t.Fatalf("StreamSections() error = %v", err)
	}

	if got := rec.Header().Get("Content-Type"); got != "application/x-ndjson" {
		t.Errorf("Content-Type = %q", got)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Errorf("line is not valid JSON: %q", line)
		}
	}
}

func TestExportContentJSON(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	section := h.createSection(t, "Guides")
	h.createItem(t, section.ID, "One", "text", `{"text":"a"}`)
	h.createItem(t, section.ID, "Two", "list", `{"items":["b"]}`)

	rec := httptest.NewRecorder()
	if err := h.services.Export.StreamContent(ctx, rec, "json"); err != nil {
		t.Fatalf("StreamContent() error = %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("body is not a JSON array: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2", len(records))
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	h := newTestHarness(t)

	rec := httptest.NewRecorder()
	if err := h.services.Export.StreamSections(context.Background(), rec, "xml"); err == nil {
		t.Error("StreamSections() accepted an unsupported format")
	}
}

func TestExportCounts(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	section := h.createSection(t, "Guides")
	h.createItem(t, section.ID, "One", "text", `{"text":"a"}`)

	if count, err := h.services.Export.GetCount(ctx, "sections"); err != nil || count != 1 {
		t.Errorf("GetCount(sections) = %d, %v", count, err)
	}
	if count, err := h.services.Export.GetCount(ctx, "content"); err != nil || count != 1 {
		t.Errorf("GetCount(content) = %d, %v", count, err)
	}
	if _, err := h.services.Export.GetCount(ctx, "bogus"); err == nil {
		t.Error("GetCount() accepted an unknown resource")
	}
}
