package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/open-overheid/woo-publicatie-api/internal/ingest"
	"github.com/open-overheid/woo-publicatie-api/internal/models"
)

// PDFTextExtractor extracts the plain text of a (possibly page-scoped)
// PDF materialization.
type PDFTextExtractor struct{}

func (PDFTextExtractor) Key() string {
	return "pdf_text"
}

func (PDFTextExtractor) Supports(fileInfo *models.FileInfo) bool {
	return fileInfo.SourceType == models.SourceTypePDF || fileInfo.ContentType == "application/pdf"
}

func (e PDFTextExtractor) Content(ctx context.Context, fileInfo *models.FileInfo, ref *ingest.LazyFileReference) ([]byte, error) {
	path, err := ref.Path(ctx)
	if err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	extractedText := strings.TrimSpace(textBuilder.String())

	if extractedText == "" {
		return nil, fmt.Errorf("no text could be extracted from PDF")
	}

	return []byte(extractedText), nil
}
