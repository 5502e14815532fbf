package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/open-overheid/woo-publicatie-api/internal/models"
)

func TestLazyFileReferencePathMemoized(t *testing.T) {
	storage := &fakeEntityStorage{}
	doc := &models.Document{ID: uuid.New()}
	ref := NewLazyFileReference(doc, NewContentExtractOptions(), storage)

	if ref.HasPath() {
		t.Error("fresh reference must not report a path")
	}

	first, err := ref.Path(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ref.Path(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("expected memoized path, got %s then %s", first, second)
	}
	if len(storage.downloads) != 1 {
		t.Errorf("expected a single download, got %d", len(storage.downloads))
	}
	if !ref.HasPath() {
		t.Error("resolved reference must report a path")
	}
}

func TestLazyFileReferenceDownloadError(t *testing.T) {
	storage := &fakeEntityStorage{downloadErr: errors.New("unavailable")}
	doc := &models.Document{ID: uuid.New()}
	ref := NewLazyFileReference(doc, NewContentExtractOptions(), storage)

	if _, err := ref.Path(context.Background()); err == nil {
		t.Fatal("expected download error")
	}
	if ref.HasPath() {
		t.Error("failed download must not mark the reference resolved")
	}
	if err := ref.Release(); err != nil {
		t.Errorf("releasing an unresolved reference must be a no-op, got %v", err)
	}
	if len(storage.removedPaths) != 0 {
		t.Error("nothing to remove for an unresolved reference")
	}
}

func TestLazyFileReferenceReleaseOnce(t *testing.T) {
	storage := &fakeEntityStorage{}
	doc := &models.Document{ID: uuid.New()}
	ref := NewLazyFileReference(doc, NewContentExtractOptions(), storage)

	path, err := ref.Path(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ref.Release(); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}
	if err := ref.Release(); err != nil {
		t.Fatalf("second release must be a no-op, got %v", err)
	}

	if len(storage.removedPaths) != 1 {
		t.Fatalf("expected exactly one removal, got %d", len(storage.removedPaths))
	}
	if storage.removedPaths[0] != path {
		t.Errorf("removed wrong path: %s, want %s", storage.removedPaths[0], path)
	}
	if ref.HasPath() {
		t.Error("released reference must not report a path")
	}
}

func TestLazyFileReferencePassesOptionsToStorage(t *testing.T) {
	storage := &fakeEntityStorage{}
	doc := &models.Document{ID: uuid.New()}
	ref := NewLazyFileReference(doc, NewContentExtractOptions().WithPageNumber(5), storage)

	if _, err := ref.Path(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(storage.downloads) != 1 || storage.downloads[0].PageNumber() != 5 {
		t.Error("page number must reach the storage download")
	}
}
