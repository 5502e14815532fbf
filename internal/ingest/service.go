package ingest

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/open-overheid/woo-publicatie-api/internal/models"
	"github.com/open-overheid/woo-publicatie-api/internal/utils"
)

var (
	extractsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "woo_content_extracts_total",
		Help: "Total number of content extract runs (by outcome).",
	}, []string{"outcome"})
)

// ContentExtractor produces one named content artifact from a
// materialized file. Supports must be a pure predicate over file
// metadata (no I/O); Content may read the file or invoke external tools
// and must return an error on unrecoverable failure rather than an
// empty artifact, since empty output is indistinguishable from "no
// content found".
type ContentExtractor interface {
	Key() string
	Supports(fileInfo *models.FileInfo) bool
	Content(ctx context.Context, fileInfo *models.FileInfo, ref *LazyFileReference) ([]byte, error)
}

// ContentExtractService runs the registered extractors against an
// entity's file, caching each extract under a deterministic key.
// Extractor order is registration order and determines the order of the
// resulting collection.
type ContentExtractService struct {
	storage    EntityStorage
	cache      *ExtractCache
	keygen     CacheKeyGenerator
	extractors []ContentExtractor
	logger     *utils.Logger
}

func NewContentExtractService(
	storage EntityStorage,
	cache *ExtractCache,
	extractors []ContentExtractor,
	logger *utils.Logger,
) *ContentExtractService {
	return &ContentExtractService{
		storage:    storage,
		cache:      cache,
		extractors: extractors,
		logger:     logger,
	}
}

// GetExtracts returns the extract collection for the entity. It never
// returns an error: any failure inside the pipeline is logged, marks the
// collection as failure and stops further extraction, so downstream
// consumers can degrade gracefully instead of handling exceptions.
func (s *ContentExtractService) GetExtracts(
	ctx context.Context,
	entity models.EntityWithFileInfo,
	options ContentExtractOptions,
) *ContentExtractCollection {
	extracts := &ContentExtractCollection{}

	fileInfo := entity.GetFileInfo()
	if !fileInfo.IsUploaded() {
		s.logWarn("Content extract skipped because file was not uploaded", entity)
		extractsTotal.WithLabelValues("not_uploaded").Inc()
		extracts.MarkAsFailure()
		return extracts
	}

	fileReference := NewLazyFileReference(entity, options, s.storage)

	// The reference may or may not have materialized by the time we
	// return; release must happen on every exit path exactly once.
	defer func() {
		if fileReference.HasPath() {
			if err := fileReference.Release(); err != nil {
				s.logError("Failed to remove local file copy: "+err.Error(), entity)
			}
		}
	}()

	if err := s.ensureEntityHashIsSet(ctx, entity, options, fileReference); err != nil {
		s.logError("Content extract error: "+err.Error(), entity)
		extractsTotal.WithLabelValues("failure").Inc()
		extracts.MarkAsFailure()
		return extracts
	}

	for _, extractor := range s.extractors {
		if !options.IsExtractorEnabled(extractor.Key()) {
			continue
		}

		if !extractor.Supports(fileInfo) {
			continue
		}

		extract, err := s.getExtract(ctx, fileReference, entity, extractor, options)
		if err != nil {
			s.logError("Content extract error: "+err.Error(), entity)
			extractsTotal.WithLabelValues("failure").Inc()
			extracts.MarkAsFailure()
			return extracts
		}

		extracts.Append(extract)
	}

	if extracts.IsEmpty() {
		s.logWarn("No content could be extracted", entity)
		extractsTotal.WithLabelValues("empty").Inc()
		return extracts
	}

	extractsTotal.WithLabelValues("success").Inc()

	return extracts
}

func (s *ContentExtractService) getExtract(
	ctx context.Context,
	fileReference *LazyFileReference,
	entity models.EntityWithFileInfo,
	extractor ContentExtractor,
	options ContentExtractOptions,
) (ContentExtract, error) {
	cacheKey := s.keygen.Generate(extractor.Key(), entity, options)

	if options.HasRefresh() {
		s.cache.Delete(cacheKey)
	}

	return s.cache.Get(cacheKey, entity.GetID().String(), func() (ContentExtract, error) {
		content, err := extractor.Content(ctx, entity.GetFileInfo(), fileReference)
		if err != nil {
			return ContentExtract{}, fmt.Errorf("extractor %s: %w", extractor.Key(), err)
		}

		return ContentExtract{Key: extractor.Key(), Content: content}, nil
	})
}

// ensureEntityHashIsSet exists for backwards compatibility: entities
// created before hashing was introduced get the hash computed on the fly,
// once. The hash is always taken over complete document bytes, so a
// page-scoped request needs its own whole-document materialization.
func (s *ContentExtractService) ensureEntityHashIsSet(
	ctx context.Context,
	entity models.EntityWithFileInfo,
	options ContentExtractOptions,
	fileReference *LazyFileReference,
) error {
	if entity.GetFileInfo().HasHash() {
		return nil
	}

	if options.HasPageNumber() {
		documentReference := NewLazyFileReference(entity, options.WithoutPageNumber(), s.storage)
		defer func() {
			if err := documentReference.Release(); err != nil {
				s.logError("Failed to remove local file copy: "+err.Error(), entity)
			}
		}()

		path, err := documentReference.Path(ctx)
		if err != nil {
			return err
		}

		return s.storage.SetHash(ctx, entity, path)
	}

	// The existing reference is already whole-document; reuse it and
	// leave the download in place for further processing.
	path, err := fileReference.Path(ctx)
	if err != nil {
		return err
	}

	return s.storage.SetHash(ctx, entity, path)
}

func (s *ContentExtractService) logWarn(msg string, entity models.EntityWithFileInfo) {
	s.logger.Warn(msg, "id", entity.GetID().String(), "class", fmt.Sprintf("%T", entity))
}

func (s *ContentExtractService) logError(msg string, entity models.EntityWithFileInfo) {
	s.logger.Error(msg, "id", entity.GetID().String(), "class", fmt.Sprintf("%T", entity))
}
