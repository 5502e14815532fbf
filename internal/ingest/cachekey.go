package ingest

import (
	"fmt"

	"github.com/open-overheid/woo-publicatie-api/internal/models"
)

// CacheKeyGenerator derives the cache key for one extract. The key is a
// pure function of extractor key, entity identity and page number: the
// same inputs always produce the same key, and keys double as deletion
// targets for cache refresh, so determinism is a hard invariant.
//
// The refresh flag and the extractor allow-list deliberately do not
// participate: neither changes the content of the extract.
type CacheKeyGenerator struct{}

func (CacheKeyGenerator) Generate(extractorKey string, entity models.EntityWithFileInfo, options ContentExtractOptions) string {
	fingerprint := "full"
	if options.HasPageNumber() {
		fingerprint = fmt.Sprintf("page-%d", options.PageNumber())
	}

	return fmt.Sprintf("extract.%s.%s.%s", extractorKey, entity.GetID(), fingerprint)
}
