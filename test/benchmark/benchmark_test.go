package benchmark

import (
	"context"
	"strconv"
	"testing"

	"github.com/knowledge-base-api/internal/container"
	"github.com/knowledge-base-api/internal/mocks"
	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/validation"
)

// benchmarkContent builds a messy legacy payload the normalizer has to
// repair: nested tabs whose contents are maps, a stray table key, and
// supplementary fields.
func benchmarkContent() map[string]any {
	tabs := make([]any, 0, 20)
	for i := 0; i < 20; i++ {
		tabs = append(tabs, map[string]any{
			"title":   "Tab " + strconv.Itoa(i),
			"content": map[string]any{"text": "body for tab " + strconv.Itoa(i)},
		})
	}
	return map[string]any{
		"tabs":  tabs,
		"table": map[string]any{"headers": []any{"Name", "Role"}, "rows": []any{"Ana, admin"}},
		"note":  "remember this",
		"alert": map[string]any{"type": "info", "message": "heads up"},
	}
}

// BenchmarkNormalize benchmarks content normalization on a legacy payload
func BenchmarkNormalize(b *testing.B) {
	content := benchmarkContent()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		container.Normalize(content, container.TypeTabs)
	}
}

// BenchmarkRender benchmarks display tree construction
func BenchmarkRender(b *testing.B) {
	_, content := container.Normalize(benchmarkContent(), container.TypeTabs)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		container.Render(container.TypeTabs, content)
	}
}

// BenchmarkFlattenText benchmarks nested value flattening
func BenchmarkFlattenText(b *testing.B) {
	value := map[string]any{
		"sections": []any{
			map[string]any{"title": "One", "content": "first"},
			map[string]any{"title": "Two", "content": []any{"a", "b", "c"}},
		},
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		container.FlattenText(value)
	}
}

// BenchmarkValidation benchmarks the content item validation pipeline
func BenchmarkValidation(b *testing.B) {
	validator := validation.NewValidator(6)

	input := &models.ContentItemInput{
		Title:         "Fire evacuation procedure",
		Description:   "What to do when the alarm sounds",
		SectionID:     1,
		ContainerType: "steps",
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validator.ValidateContentItem(input)
	}
}

// BenchmarkStreamContent benchmarks streaming export traversal
func BenchmarkStreamContent(b *testing.B) {
	repo := mocks.NewMockContentRepository()
	for i := 0; i < 1000; i++ {
		repo.Create(context.Background(), &models.ContentItem{
			Title:         "Item " + strconv.Itoa(i),
			SectionID:     1,
			AuthorID:      1,
			ContainerType: "text",
			Content:       []byte(`{"text":"body"}`),
			Published:     true,
		})
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		count := 0
		repo.StreamAll(context.Background(), func(item *models.ContentItem) error {
			count++
			return nil
		})
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}
