package extractor

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"

	"github.com/open-overheid/woo-publicatie-api/internal/ingest"
	"github.com/open-overheid/woo-publicatie-api/internal/models"
)

// ThumbnailExtractor renders the first page of the materialized PDF as a
// PNG. For page-scoped extractions the materialization is already a
// single-page document, so "first page" is the requested page.
type ThumbnailExtractor struct{}

func (ThumbnailExtractor) Key() string {
	return "thumbnail"
}

func (ThumbnailExtractor) Supports(fileInfo *models.FileInfo) bool {
	return fileInfo.SourceType == models.SourceTypePDF || fileInfo.ContentType == "application/pdf"
}

func (e ThumbnailExtractor) Content(ctx context.Context, fileInfo *models.FileInfo, ref *ingest.LazyFileReference) ([]byte, error) {
	path, err := ref.Path(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}
