package ingest

import "testing"

func TestOptionsZeroValue(t *testing.T) {
	options := NewContentExtractOptions()

	if options.HasPageNumber() {
		t.Error("zero options must not carry a page number")
	}
	if options.HasRefresh() {
		t.Error("zero options must not request a refresh")
	}
	if !options.IsExtractorEnabled("pdf_text") {
		t.Error("all extractors are enabled without an allow-list")
	}
}

func TestOptionsWithPageNumber(t *testing.T) {
	paged := NewContentExtractOptions().WithPageNumber(3)

	if !paged.HasPageNumber() || paged.PageNumber() != 3 {
		t.Errorf("expected page 3, got %d", paged.PageNumber())
	}

	whole := paged.WithoutPageNumber()
	if whole.HasPageNumber() {
		t.Error("WithoutPageNumber must clear the page scope")
	}
	// Options are values: the original is untouched.
	if !paged.HasPageNumber() {
		t.Error("deriving options must not mutate the original")
	}
}

func TestOptionsAllowList(t *testing.T) {
	options := NewContentExtractOptions().WithExtractors("pdf_text", "thumbnail")

	if !options.IsExtractorEnabled("pdf_text") {
		t.Error("listed extractor must be enabled")
	}
	if !options.IsExtractorEnabled("thumbnail") {
		t.Error("listed extractor must be enabled")
	}
	if options.IsExtractorEnabled("docx_text") {
		t.Error("unlisted extractor must be disabled")
	}
}
