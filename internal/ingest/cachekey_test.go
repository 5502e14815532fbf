package ingest

import (
	"testing"

	"github.com/google/uuid"

	"github.com/open-overheid/woo-publicatie-api/internal/models"
)

func TestGenerateIsDeterministic(t *testing.T) {
	gen := CacheKeyGenerator{}
	doc := &models.Document{ID: uuid.MustParse("11111111-2222-3333-4444-555555555555")}

	first := gen.Generate("pdf_text", doc, NewContentExtractOptions())
	second := gen.Generate("pdf_text", doc, NewContentExtractOptions())

	if first != second {
		t.Errorf("same inputs produced different keys: %s vs %s", first, second)
	}
	want := "extract.pdf_text.11111111-2222-3333-4444-555555555555.full"
	if first != want {
		t.Errorf("unexpected key: got %s, want %s", first, want)
	}
}

func TestGeneratePageScoped(t *testing.T) {
	gen := CacheKeyGenerator{}
	doc := &models.Document{ID: uuid.MustParse("11111111-2222-3333-4444-555555555555")}

	key := gen.Generate("pdf_text", doc, NewContentExtractOptions().WithPageNumber(7))

	want := "extract.pdf_text.11111111-2222-3333-4444-555555555555.page-7"
	if key != want {
		t.Errorf("unexpected key: got %s, want %s", key, want)
	}
}

func TestGenerateVariesPerInput(t *testing.T) {
	gen := CacheKeyGenerator{}
	doc := &models.Document{ID: uuid.New()}
	other := &models.Document{ID: uuid.New()}
	base := NewContentExtractOptions()

	keys := map[string]string{
		"base":            gen.Generate("pdf_text", doc, base),
		"other extractor": gen.Generate("thumbnail", doc, base),
		"other entity":    gen.Generate("pdf_text", other, base),
		"other page":      gen.Generate("pdf_text", doc, base.WithPageNumber(2)),
	}

	seen := map[string]string{}
	for name, key := range keys {
		if prev, ok := seen[key]; ok {
			t.Errorf("inputs %q and %q collide on key %s", name, prev, key)
		}
		seen[key] = name
	}
}

func TestGenerateIgnoresRefreshAndAllowList(t *testing.T) {
	gen := CacheKeyGenerator{}
	doc := &models.Document{ID: uuid.New()}

	base := gen.Generate("pdf_text", doc, NewContentExtractOptions())
	refreshed := gen.Generate("pdf_text", doc, NewContentExtractOptions().WithRefresh())
	restricted := gen.Generate("pdf_text", doc, NewContentExtractOptions().WithExtractors("pdf_text"))

	if base != refreshed {
		t.Error("refresh flag must not change the cache key")
	}
	if base != restricted {
		t.Error("extractor allow-list must not change the cache key")
	}
}

func TestGenerateRoundTripsPageRemoval(t *testing.T) {
	gen := CacheKeyGenerator{}
	doc := &models.Document{ID: uuid.New()}
	paged := NewContentExtractOptions().WithPageNumber(4)

	if gen.Generate("pdf_text", doc, paged.WithoutPageNumber()) != gen.Generate("pdf_text", doc, NewContentExtractOptions()) {
		t.Error("WithoutPageNumber must map back to the whole-document key")
	}
}
