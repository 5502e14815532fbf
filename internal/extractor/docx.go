package extractor

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/open-overheid/woo-publicatie-api/internal/ingest"
	"github.com/open-overheid/woo-publicatie-api/internal/models"
)

type wordDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    wordBody `xml:"body"`
}

type wordBody struct {
	Paragraphs []wordParagraph `xml:"p"`
}

type wordParagraph struct {
	Runs []wordRun `xml:"r"`
}

type wordRun struct {
	Text string `xml:"t"`
}

// DocxTextExtractor extracts the paragraph text of an Office Open XML
// word processing document.
type DocxTextExtractor struct{}

func (DocxTextExtractor) Key() string {
	return "docx_text"
}

func (DocxTextExtractor) Supports(fileInfo *models.FileInfo) bool {
	if fileInfo.SourceType == models.SourceTypeDoc {
		return true
	}
	return isDocxContentType(fileInfo.ContentType)
}

func (e DocxTextExtractor) Content(ctx context.Context, fileInfo *models.FileInfo, ref *ingest.LazyFileReference) ([]byte, error) {
	path, err := ref.Path(ctx)
	if err != nil {
		return nil, err
	}

	zipReader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read DOCX as ZIP: %w", err)
	}
	defer zipReader.Close()

	// Find document.xml
	var documentFile *zip.File
	for _, file := range zipReader.File {
		if file.Name == "word/document.xml" {
			documentFile = file
			break
		}
	}

	if documentFile == nil {
		return nil, fmt.Errorf("document.xml not found in DOCX")
	}

	xmlFile, err := documentFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open document.xml: %w", err)
	}
	defer xmlFile.Close()

	xmlData, err := io.ReadAll(xmlFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read document.xml: %w", err)
	}

	var doc wordDocument
	if err := xml.Unmarshal(xmlData, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document.xml: %w", err)
	}

	var textBuilder strings.Builder
	for _, para := range doc.Body.Paragraphs {
		for _, run := range para.Runs {
			textBuilder.WriteString(run.Text)
		}
		textBuilder.WriteString("\n")
	}

	extractedText := strings.TrimSpace(textBuilder.String())

	if extractedText == "" {
		return nil, fmt.Errorf("no text could be extracted from DOCX")
	}

	return []byte(extractedText), nil
}

// isDocxContentType matches the MIME type variations browsers report
// for DOCX uploads.
func isDocxContentType(contentType string) bool {
	docxTypes := []string{
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.openxmlformats-officedocument.wordprocessingml",
		"application/docx",
		"application/x-docx",
	}

	for _, docxType := range docxTypes {
		if contentType == docxType {
			return true
		}
	}

	return false
}
