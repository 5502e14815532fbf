package upload

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/open-overheid/woo-publicatie-api/internal/storage"
)

var sevenZipExtensions = []string{
	"7z",
	"zip",
}

var sevenZipMimeTypes = []string{
	"application/zip",
	"application/x-7z-compressed",
}

// SevenZipExtractor unpacks an archive with the external 7z tool.
type SevenZipExtractor struct {
	binary string
	runner storage.CommandRunner
}

func NewSevenZipExtractor(binary string, runner storage.CommandRunner) *SevenZipExtractor {
	return &SevenZipExtractor{binary: binary, runner: runner}
}

func (e *SevenZipExtractor) Extract(ctx context.Context, archivePath, destDir string) error {
	return e.runner.Run(ctx, e.binary, "x", "-y", "-o"+destDir, archivePath)
}

// SevenZipStrategy expands zip and 7z containers into their inner files.
// Malformed archives and tool failures propagate to the caller: a
// corrupt archive fails the whole upload, there is no partial recovery
// at this layer.
type SevenZipStrategy struct {
	extractor *SevenZipExtractor
}

func NewSevenZipStrategy(extractor *SevenZipExtractor) *SevenZipStrategy {
	return &SevenZipStrategy{extractor: extractor}
}

// CanProcess matches by original extension or by sniffed MIME type;
// either is sufficient.
func (s *SevenZipStrategy) CanProcess(file UploadedFile) bool {
	ext := file.OriginalFileExtension()
	for _, supported := range sevenZipExtensions {
		if ext == supported {
			return true
		}
	}

	detected, err := mimetype.DetectFile(file.Path)
	if err != nil {
		return false
	}
	for _, supported := range sevenZipMimeTypes {
		if detected.Is(supported) {
			return true
		}
	}

	return false
}

// Process expands the archive into a temporary directory and yields the
// inner files one at a time. The temporary expansion is removed when
// Process returns; yielded paths are only valid during the callback.
// A non-nil error from yield stops the iteration and is returned as-is.
func (s *SevenZipStrategy) Process(ctx context.Context, file UploadedFile, yield func(UploadedFile) error) error {
	destDir, err := os.MkdirTemp("", "woo-archive-*")
	if err != nil {
		return fmt.Errorf("failed to create extraction dir: %w", err)
	}
	defer os.RemoveAll(destDir)

	if err := s.extractor.Extract(ctx, file.Path, destDir); err != nil {
		return fmt.Errorf("failed to extract archive %s: %w", file.OriginalName, err)
	}

	return filepath.WalkDir(destDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		name, err := filepath.Rel(destDir, path)
		if err != nil {
			name = entry.Name()
		}

		return yield(NewUploadedFile(path, name))
	})
}
