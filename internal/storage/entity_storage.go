package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/open-overheid/woo-publicatie-api/internal/ingest"
	"github.com/open-overheid/woo-publicatie-api/internal/models"
	"github.com/open-overheid/woo-publicatie-api/internal/repository"
	"github.com/open-overheid/woo-publicatie-api/internal/utils"
)

// CommandRunner executes an external tool. Injectable so tests can fake
// qpdf and 7z invocations.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands through os/exec, folding stderr into the error.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, string(output))
	}
	return nil
}

// EntityStorage is the bridge between catalog entities and the durable
// object store. It stages entity bytes as local temporary files for the
// extraction pipeline and persists FileInfo hash updates. It implements
// ingest.EntityStorage.
type EntityStorage struct {
	storage    Storage
	repo       repository.Repository
	runner     CommandRunner
	qpdfBinary string
	logger     *utils.Logger
}

func NewEntityStorage(storage Storage, repo repository.Repository, runner CommandRunner, qpdfBinary string, logger *utils.Logger) *EntityStorage {
	return &EntityStorage{
		storage:    storage,
		repo:       repo,
		runner:     runner,
		qpdfBinary: qpdfBinary,
		logger:     logger,
	}
}

// ObjectKey is the location of an entity's bytes in the object store.
// Keyed by entity ID only, so renames and re-uploads overwrite in place.
func ObjectKey(entity models.EntityWithFileInfo) string {
	return "documents/" + entity.GetID().String()
}

// Download materializes the entity's bytes at a local temporary path.
// With a page number in the options, the whole document is staged first
// and the single page is cut out with qpdf; the full staging copy is
// removed before returning.
func (es *EntityStorage) Download(ctx context.Context, entity models.EntityWithFileInfo, options ingest.ContentExtractOptions) (string, error) {
	fullPath, err := es.downloadFull(ctx, entity)
	if err != nil {
		return "", err
	}

	if !options.HasPageNumber() {
		return fullPath, nil
	}

	pagePath, err := es.cutPage(ctx, fullPath, options.PageNumber())

	// The whole-document staging copy is only needed to cut the page.
	if removeErr := os.Remove(fullPath); removeErr != nil {
		es.logger.Warn("Failed to remove staging copy", "path", fullPath, "error", removeErr)
	}

	if err != nil {
		return "", err
	}

	return pagePath, nil
}

func (es *EntityStorage) downloadFull(ctx context.Context, entity models.EntityWithFileInfo) (string, error) {
	tmp, err := os.CreateTemp("", "woo-download-*"+filepath.Ext(entity.GetFileInfo().Name))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp.Close()

	if err := es.storage.DownloadToFile(ctx, ObjectKey(entity), tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}

func (es *EntityStorage) cutPage(ctx context.Context, fullPath string, page int) (string, error) {
	tmp, err := os.CreateTemp("", "woo-page-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp.Close()

	pageSpec := strconv.Itoa(page)
	if err := es.runner.Run(ctx, es.qpdfBinary, fullPath, "--pages", ".", pageSpec, "--", tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to cut page %d: %w", page, err)
	}

	return tmp.Name(), nil
}

// RemoveDownload deletes a local materialization created by Download.
func (es *EntityStorage) RemoveDownload(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove download: %w", err)
	}
	return nil
}

// SetHash computes the SHA-256 of the file at path and records it on the
// entity, persisting the catalog row for documents. An already-set hash
// is never overwritten.
func (es *EntityStorage) SetHash(ctx context.Context, entity models.EntityWithFileInfo, path string) error {
	fileInfo := entity.GetFileInfo()
	if fileInfo.HasHash() {
		return nil
	}

	hash, err := hashFile(path)
	if err != nil {
		return err
	}

	fileInfo.SetHash(hash)

	if doc, ok := entity.(*models.Document); ok {
		if err := es.repo.UpdateFileInfo(ctx, doc); err != nil {
			return fmt.Errorf("failed to persist file hash: %w", err)
		}
	}

	return nil
}

// StoreDocument persists a validated local file into the object store
// slot of the given document.
func (es *EntityStorage) StoreDocument(ctx context.Context, localPath string, doc *models.Document) (bool, error) {
	err := es.storage.UploadFile(ctx, ObjectKey(doc), localPath, doc.FileInfo.ContentType)
	if err != nil {
		return false, err
	}
	return true, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
