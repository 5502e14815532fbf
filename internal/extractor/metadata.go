package extractor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/open-overheid/woo-publicatie-api/internal/ingest"
	"github.com/open-overheid/woo-publicatie-api/internal/models"
)

// PDFMetadata is the structured artifact produced by PDFMetadataExtractor.
type PDFMetadata struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	PageCount int    `json:"page_count"`
}

// PDFMetadataExtractor reads document metadata and the page count from
// the materialized PDF and emits them as a JSON artifact.
type PDFMetadataExtractor struct{}

func (PDFMetadataExtractor) Key() string {
	return "pdf_metadata"
}

func (PDFMetadataExtractor) Supports(fileInfo *models.FileInfo) bool {
	return fileInfo.SourceType == models.SourceTypePDF || fileInfo.ContentType == "application/pdf"
}

func (e PDFMetadataExtractor) Content(ctx context.Context, fileInfo *models.FileInfo, ref *ingest.LazyFileReference) ([]byte, error) {
	path, err := ref.Path(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	docMetadata := doc.Metadata()
	metadata := PDFMetadata{
		PageCount: doc.NumPage(),
	}

	if title, ok := docMetadata["title"]; ok && title != "" {
		metadata.Title = title
	}
	if author, ok := docMetadata["author"]; ok && author != "" {
		metadata.Author = author
	}

	payload, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}

	return payload, nil
}
