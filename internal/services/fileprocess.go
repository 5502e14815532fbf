package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/open-overheid/woo-publicatie-api/internal/models"
	"github.com/open-overheid/woo-publicatie-api/internal/repository"
	"github.com/open-overheid/woo-publicatie-api/internal/upload"
	"github.com/open-overheid/woo-publicatie-api/internal/utils"
)

// FileStorer persists a validated local file into the durable storage
// slot of a document.
type FileStorer interface {
	StoreDocument(ctx context.Context, localPath string, doc *models.Document) (bool, error)
}

// ExtractInvalidator drops all cached extracts for an entity, used when
// its file is replaced.
type ExtractInvalidator interface {
	InvalidateEntity(entityID string)
}

// Document numbers are the leading digits of the uploaded filename.
var documentIDPattern = regexp.MustCompile(`^(\d+)`)

// FileProcessService matches uploaded files to catalog documents and
// stores their bytes. A single PDF or audio file is matched directly; an
// archive is expanded and each inner PDF matched on its own, with
// per-file failures skipped so one bad entry never aborts the batch.
type FileProcessService struct {
	repo         repository.Repository
	storer       FileStorer
	preprocessor *upload.FilePreprocessor
	invalidator  ExtractInvalidator
	logger       *utils.Logger
}

func NewFileProcessService(
	repo repository.Repository,
	storer FileStorer,
	preprocessor *upload.FilePreprocessor,
	invalidator ExtractInvalidator,
	logger *utils.Logger,
) *FileProcessService {
	return &FileProcessService{
		repo:         repo,
		storer:       storer,
		preprocessor: preprocessor,
		invalidator:  invalidator,
		logger:       logger,
	}
}

// ProcessFile routes an uploaded file by its original extension. It
// returns whether at least one document was stored. Unsupported file
// types and archive extraction failures are errors; a file that merely
// matches no catalog document is not.
func (s *FileProcessService) ProcessFile(ctx context.Context, file upload.UploadedFile, dossier *models.Dossier) (bool, error) {
	switch ext := file.OriginalFileExtension(); ext {
	case "pdf":
		return s.processSingleFile(ctx, file, dossier, models.SourceTypePDF)
	case "mp3":
		return s.processSingleFile(ctx, file, dossier, models.SourceTypeAudio)
	case "zip", "7z":
		return s.processArchive(ctx, file, dossier)
	default:
		s.logger.Error("Unsupported filetype detected",
			"extension", ext,
			"original_file", file.OriginalName,
			"dossier_id", dossier.ID.String())
		return false, utils.NewBadRequestError(fmt.Sprintf("Unsupported file type '.%s'", ext))
	}
}

// processArchive expands the container and matches every inner PDF.
// Individual file failures (unparseable names, storage errors) are
// logged and skipped; the batch continues. Archive-level failures
// propagate: a corrupt archive fails the whole upload.
func (s *FileProcessService) processArchive(ctx context.Context, file upload.UploadedFile, dossier *models.Dossier) (bool, error) {
	var stored bool

	err := s.preprocessor.Process(ctx, file, func(inner upload.UploadedFile) error {
		if inner.OriginalFileExtension() != "pdf" {
			return nil
		}

		ok, err := s.processSingleFile(ctx, inner, dossier, models.SourceTypePDF)
		if err != nil {
			// Seems like an extra file in the archive; skip it.
			s.logger.Warn("Skipping archive entry",
				"filename", inner.OriginalName,
				"dossier_id", dossier.ID.String(),
				"error", err.Error())
			return nil
		}
		if ok {
			stored = true
		}
		return nil
	})
	if err != nil {
		return stored, err
	}

	return stored, nil
}

// processSingleFile resolves the file to a catalog document by the
// numeric prefix of its filename and stores the bytes. Returns
// (false, nil) when the document legitimately does not exist and
// (true, nil) when it exists but is not eligible for upload; both are
// normal, non-fatal outcomes.
func (s *FileProcessService) processSingleFile(ctx context.Context, file upload.UploadedFile, dossier *models.Dossier, sourceType models.SourceType) (bool, error) {
	originalName := filepath.Base(file.OriginalName)

	matches := documentIDPattern.FindStringSubmatch(originalName)
	if matches == nil {
		s.logger.Error("Cannot extract document ID from the filename",
			"filename", originalName,
			"dossier_id", dossier.ID.String())
		return false, utils.NewBadRequestError("Cannot extract document id from file")
	}
	documentID := matches[1]

	documentNr := dossier.DocumentPrefix + "-" + documentID

	doc, err := s.repo.FindByDossierAndDocumentNr(ctx, dossier.ID, documentNr)
	if err != nil {
		return false, utils.WrapInternal("Failed to look up document", err)
	}
	if doc == nil {
		// Document does not exist. That is actually fine.
		s.logger.Info("Could not find document, skipping",
			"filename", originalName,
			"document_nr", documentNr,
			"dossier_id", dossier.ID.String())
		return false, nil
	}

	if !doc.ShouldBeUploaded() {
		s.logger.Warn("Document should not be uploaded, skipping it",
			"document_nr", documentNr,
			"dossier_id", dossier.ID.String())
		return true, nil
	}

	stat, err := os.Stat(file.Path)
	if err != nil {
		return false, utils.WrapInternal("Failed to stat uploaded file", err)
	}

	replacing := doc.FileInfo.Uploaded

	doc.FileInfo.Name = originalName
	doc.FileInfo.Size = stat.Size()
	doc.FileInfo.ContentType = contentTypeFor(sourceType)
	doc.FileInfo.SourceType = sourceType
	doc.FileInfo.Paginatable = sourceType == models.SourceTypePDF

	ok, err := s.storer.StoreDocument(ctx, file.Path, doc)
	if err != nil || !ok {
		s.logger.Error("Failed to store document",
			"document_nr", documentNr,
			"path", file.Path,
			"error", fmt.Sprint(err))
		return false, utils.WrapInternal(fmt.Sprintf("Failed to store document %s", documentNr), err)
	}

	if replacing {
		// New bytes: the old hash and any cached extracts are stale.
		doc.FileInfo.Hash = nil
		s.invalidator.InvalidateEntity(doc.ID.String())
	}
	doc.FileInfo.Uploaded = true

	if err := s.repo.UpdateFileInfo(ctx, doc); err != nil {
		return false, utils.WrapInternal("Failed to update document metadata", err)
	}

	s.logger.Info("Document stored",
		"document_nr", documentNr,
		"filename", originalName,
		"filesize", stat.Size(),
		"dossier_id", dossier.ID.String())

	return true, nil
}

func contentTypeFor(sourceType models.SourceType) string {
	switch sourceType {
	case models.SourceTypePDF:
		return "application/pdf"
	case models.SourceTypeAudio:
		return "audio/mpeg"
	case models.SourceTypeDoc:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case models.SourceTypeText:
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
