package ingest

import (
	"errors"
	"testing"
	"time"
)

func TestCacheGetComputesOnceOnly(t *testing.T) {
	cache := NewExtractCache(16, time.Minute)

	computes := 0
	compute := func() (ContentExtract, error) {
		computes++
		return ContentExtract{Key: "pdf_text", Content: []byte("text")}, nil
	}

	for i := 0; i < 3; i++ {
		extract, err := cache.Get("extract.pdf_text.a.full", "a", compute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(extract.Content) != "text" {
			t.Errorf("unexpected content: %s", extract.Content)
		}
	}

	if computes != 1 {
		t.Errorf("expected a single compute, got %d", computes)
	}
}

func TestCacheGetComputeErrorNotCached(t *testing.T) {
	cache := NewExtractCache(16, time.Minute)

	computes := 0
	boom := errors.New("boom")

	_, err := cache.Get("key", "a", func() (ContentExtract, error) {
		computes++
		return ContentExtract{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected compute error, got %v", err)
	}

	// A failed compute leaves no entry behind.
	_, err = cache.Get("key", "a", func() (ContentExtract, error) {
		computes++
		return ContentExtract{Key: "pdf_text"}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if computes != 2 {
		t.Errorf("expected recompute after error, got %d computes", computes)
	}
}

func TestCacheDelete(t *testing.T) {
	cache := NewExtractCache(16, time.Minute)

	computes := 0
	compute := func() (ContentExtract, error) {
		computes++
		return ContentExtract{Key: "pdf_text"}, nil
	}

	cache.Get("key", "a", compute)
	cache.Delete("key")
	cache.Get("key", "a", compute)

	if computes != 2 {
		t.Errorf("expected recompute after delete, got %d computes", computes)
	}
}

func TestCacheInvalidateEntity(t *testing.T) {
	cache := NewExtractCache(16, time.Minute)

	store := func(key, entityID string) {
		cache.Get(key, entityID, func() (ContentExtract, error) {
			return ContentExtract{Key: key}, nil
		})
	}

	store("extract.pdf_text.a.full", "a")
	store("extract.thumbnail.a.full", "a")
	store("extract.pdf_text.b.full", "b")

	cache.InvalidateEntity("a")

	hits := func(key, entityID string) bool {
		computed := false
		cache.Get(key, entityID, func() (ContentExtract, error) {
			computed = true
			return ContentExtract{Key: key}, nil
		})
		return !computed
	}

	if hits("extract.pdf_text.a.full", "a") {
		t.Error("entity a entries should have been invalidated")
	}
	if hits("extract.thumbnail.a.full", "a") {
		t.Error("all entries for entity a should have been invalidated")
	}
	if !hits("extract.pdf_text.b.full", "b") {
		t.Error("entity b entries must survive invalidation of entity a")
	}
}

func TestCacheInvalidateUnknownEntity(t *testing.T) {
	cache := NewExtractCache(16, time.Minute)

	// Must not panic or disturb other entries.
	cache.InvalidateEntity("never-seen")

	cache.Get("key", "a", func() (ContentExtract, error) {
		return ContentExtract{Key: "pdf_text"}, nil
	})
	cache.InvalidateEntity("never-seen")

	computed := false
	cache.Get("key", "a", func() (ContentExtract, error) {
		computed = true
		return ContentExtract{}, nil
	})
	if computed {
		t.Error("invalidating an unknown entity must not evict other entries")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	cache := NewExtractCache(16, 10*time.Millisecond)

	computes := 0
	compute := func() (ContentExtract, error) {
		computes++
		return ContentExtract{Key: "pdf_text"}, nil
	}

	cache.Get("key", "a", compute)
	time.Sleep(30 * time.Millisecond)
	cache.Get("key", "a", compute)

	if computes != 2 {
		t.Errorf("expected recompute after TTL expiry, got %d computes", computes)
	}
}
