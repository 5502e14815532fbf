package extractor

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/open-overheid/woo-publicatie-api/internal/ingest"
	"github.com/open-overheid/woo-publicatie-api/internal/models"
)

// localFileStorage materializes a fixed local path, letting tests build
// real lazy references over fixture files.
type localFileStorage struct {
	path string
}

func (s localFileStorage) Download(ctx context.Context, entity models.EntityWithFileInfo, options ingest.ContentExtractOptions) (string, error) {
	return s.path, nil
}

func (s localFileStorage) RemoveDownload(path string) error {
	return nil
}

func (s localFileStorage) SetHash(ctx context.Context, entity models.EntityWithFileInfo, path string) error {
	return nil
}

func referenceFor(path string) *ingest.LazyFileReference {
	doc := &models.Document{ID: uuid.New()}
	return ingest.NewLazyFileReference(doc, ingest.NewContentExtractOptions(), localFileStorage{path: path})
}

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func writeDocxFixture(t *testing.T, documentXML string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.docx")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	if documentXML != "" {
		entry, err := zw.Create("word/document.xml")
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := entry.Write([]byte(documentXML)); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	return path
}

func TestPlainTextExtractorSupports(t *testing.T) {
	e := PlainTextExtractor{}

	cases := []struct {
		name string
		info models.FileInfo
		want bool
	}{
		{"source type text", models.FileInfo{SourceType: models.SourceTypeText}, true},
		{"text/plain", models.FileInfo{ContentType: "text/plain"}, true},
		{"application/txt", models.FileInfo{ContentType: "application/txt"}, true},
		{"pdf", models.FileInfo{SourceType: models.SourceTypePDF, ContentType: "application/pdf"}, false},
	}

	for _, tc := range cases {
		if got := e.Supports(&tc.info); got != tc.want {
			t.Errorf("%s: Supports = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPlainTextExtractorUTF8(t *testing.T) {
	path := writeFixture(t, "plain.txt", []byte("  hello\r\nworld  \r\n\r\n"))

	content, err := PlainTextExtractor{}.Content(context.Background(), &models.FileInfo{}, referenceFor(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "hello\nworld" {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestPlainTextExtractorUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("met BOM")...)
	path := writeFixture(t, "bom.txt", data)

	content, err := PlainTextExtractor{}.Content(context.Background(), &models.FileInfo{}, referenceFor(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "met BOM" {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestPlainTextExtractorUTF16LE(t *testing.T) {
	// "hi" as UTF-16 little endian with BOM.
	data := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	path := writeFixture(t, "utf16.txt", data)

	content, err := PlainTextExtractor{}.Content(context.Background(), &models.FileInfo{}, referenceFor(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "hi" {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestPlainTextExtractorWindows1252(t *testing.T) {
	// 0xE9 is é in Windows-1252 and invalid as standalone UTF-8.
	path := writeFixture(t, "legacy.txt", []byte{'c', 'a', 'f', 0xE9})

	content, err := PlainTextExtractor{}.Content(context.Background(), &models.FileInfo{}, referenceFor(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "café" {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestPlainTextExtractorEmptyFile(t *testing.T) {
	path := writeFixture(t, "empty.txt", nil)

	if _, err := (PlainTextExtractor{}).Content(context.Background(), &models.FileInfo{}, referenceFor(path)); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestPlainTextExtractorWhitespaceOnly(t *testing.T) {
	path := writeFixture(t, "blank.txt", []byte("   \r\n\t \n"))

	if _, err := (PlainTextExtractor{}).Content(context.Background(), &models.FileInfo{}, referenceFor(path)); err == nil {
		t.Error("expected error when nothing remains after cleanup")
	}
}

func TestDocxTextExtractorSupports(t *testing.T) {
	e := DocxTextExtractor{}

	if !e.Supports(&models.FileInfo{SourceType: models.SourceTypeDoc}) {
		t.Error("doc source type must be supported")
	}
	if !e.Supports(&models.FileInfo{ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"}) {
		t.Error("docx content type must be supported")
	}
	if e.Supports(&models.FileInfo{SourceType: models.SourceTypePDF, ContentType: "application/pdf"}) {
		t.Error("pdf must not be supported")
	}
}

func TestDocxTextExtractorContent(t *testing.T) {
	documentXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Eerste alinea.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Tweede </w:t></w:r><w:r><w:t>alinea.</w:t></w:r></w:p>
  </w:body>
</w:document>`
	path := writeDocxFixture(t, documentXML)

	content, err := DocxTextExtractor{}.Content(context.Background(), &models.FileInfo{}, referenceFor(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "Eerste alinea.\nTweede alinea." {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestDocxTextExtractorMissingDocumentXML(t *testing.T) {
	path := writeDocxFixture(t, "")

	if _, err := (DocxTextExtractor{}).Content(context.Background(), &models.FileInfo{}, referenceFor(path)); err == nil {
		t.Error("expected error when document.xml is absent")
	}
}

func TestDocxTextExtractorNotAZip(t *testing.T) {
	path := writeFixture(t, "broken.docx", []byte("this is not a zip archive"))

	if _, err := (DocxTextExtractor{}).Content(context.Background(), &models.FileInfo{}, referenceFor(path)); err == nil {
		t.Error("expected error for non-zip input")
	}
}

func TestPDFTextExtractorSupports(t *testing.T) {
	e := PDFTextExtractor{}

	if !e.Supports(&models.FileInfo{SourceType: models.SourceTypePDF}) {
		t.Error("pdf source type must be supported")
	}
	if !e.Supports(&models.FileInfo{ContentType: "application/pdf"}) {
		t.Error("pdf content type must be supported")
	}
	if e.Supports(&models.FileInfo{SourceType: models.SourceTypeText, ContentType: "text/plain"}) {
		t.Error("plain text must not be supported")
	}
}

func TestPDFTextExtractorInvalidFile(t *testing.T) {
	path := writeFixture(t, "broken.pdf", []byte("not a pdf"))

	if _, err := (PDFTextExtractor{}).Content(context.Background(), &models.FileInfo{}, referenceFor(path)); err == nil {
		t.Error("expected error for invalid PDF")
	}
}

func TestFitzExtractorsSupports(t *testing.T) {
	pdfInfo := &models.FileInfo{SourceType: models.SourceTypePDF}
	textInfo := &models.FileInfo{SourceType: models.SourceTypeText}

	if !(ThumbnailExtractor{}).Supports(pdfInfo) || (ThumbnailExtractor{}).Supports(textInfo) {
		t.Error("thumbnail extractor must support PDFs only")
	}
	if !(PDFMetadataExtractor{}).Supports(pdfInfo) || (PDFMetadataExtractor{}).Supports(textInfo) {
		t.Error("metadata extractor must support PDFs only")
	}
}

func TestExtractorKeysUnique(t *testing.T) {
	extractors := []ingest.ContentExtractor{
		PDFTextExtractor{},
		PDFMetadataExtractor{},
		ThumbnailExtractor{},
		DocxTextExtractor{},
		PlainTextExtractor{},
	}

	seen := map[string]bool{}
	for _, e := range extractors {
		if seen[e.Key()] {
			t.Errorf("duplicate extractor key %s", e.Key())
		}
		seen[e.Key()] = true
	}
}
