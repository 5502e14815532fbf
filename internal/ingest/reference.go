package ingest

import (
	"context"

	"github.com/open-overheid/woo-publicatie-api/internal/models"
)

// EntityStorage is the storage seam the extraction core talks through.
// The core never touches the durable object store directly.
type EntityStorage interface {
	// Download materializes the entity's bytes at a local temporary
	// path, constrained to a single page when options carry a page
	// number, and returns that path.
	Download(ctx context.Context, entity models.EntityWithFileInfo, options ContentExtractOptions) (string, error)

	// RemoveDownload deletes a local materialization created by Download.
	RemoveDownload(path string) error

	// SetHash computes the content hash from the (whole-document) file
	// at path and records it on the entity's FileInfo.
	SetHash(ctx context.Context, entity models.EntityWithFileInfo, path string) error
}

// LazyFileReference materializes the bytes for one (entity, options)
// pair on demand. The first Path call downloads; later calls return the
// memoized local path. The reference owns only the transient local copy
// it creates, never the durable one, and must be released exactly once.
type LazyFileReference struct {
	entity  models.EntityWithFileInfo
	options ContentExtractOptions
	storage EntityStorage

	path     string
	resolved bool
	released bool
}

func NewLazyFileReference(entity models.EntityWithFileInfo, options ContentExtractOptions, storage EntityStorage) *LazyFileReference {
	return &LazyFileReference{
		entity:  entity,
		options: options,
		storage: storage,
	}
}

// HasPath reports whether a local materialization currently exists.
func (r *LazyFileReference) HasPath() bool {
	return r.resolved && !r.released
}

// Path returns the local path to the materialized file, downloading it
// on first call.
func (r *LazyFileReference) Path(ctx context.Context) (string, error) {
	if r.resolved {
		return r.path, nil
	}

	path, err := r.storage.Download(ctx, r.entity, r.options)
	if err != nil {
		return "", err
	}

	r.path = path
	r.resolved = true

	return path, nil
}

// Release removes the local materialization, if any. Safe to call more
// than once; only the first call after a resolve does work.
func (r *LazyFileReference) Release() error {
	if !r.resolved || r.released {
		return nil
	}

	r.released = true

	return r.storage.RemoveDownload(r.path)
}
