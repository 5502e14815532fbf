package ingest

// ContentExtractOptions is an immutable value describing one requested
// extraction. The zero value means: whole document, all extractors, no
// cache refresh.
type ContentExtractOptions struct {
	pageNumber int
	refresh    bool
	extractors map[string]bool
}

func NewContentExtractOptions() ContentExtractOptions {
	return ContentExtractOptions{}
}

// WithPageNumber scopes the extraction to a single page (1-indexed).
func (o ContentExtractOptions) WithPageNumber(page int) ContentExtractOptions {
	o.pageNumber = page
	return o
}

// WithoutPageNumber returns a whole-document variant of these options.
// Hashing must always operate on complete document bytes, even when the
// extraction itself is page-scoped.
func (o ContentExtractOptions) WithoutPageNumber() ContentExtractOptions {
	o.pageNumber = 0
	return o
}

// WithRefresh forces the cache entry to be deleted before the
// cache-aside read, so the extract is recomputed.
func (o ContentExtractOptions) WithRefresh() ContentExtractOptions {
	o.refresh = true
	return o
}

// WithExtractors restricts the extraction to the given extractor keys.
func (o ContentExtractOptions) WithExtractors(keys ...string) ContentExtractOptions {
	allowed := make(map[string]bool, len(keys))
	for _, key := range keys {
		allowed[key] = true
	}
	o.extractors = allowed
	return o
}

func (o ContentExtractOptions) HasPageNumber() bool {
	return o.pageNumber > 0
}

func (o ContentExtractOptions) PageNumber() int {
	return o.pageNumber
}

func (o ContentExtractOptions) HasRefresh() bool {
	return o.refresh
}

// IsExtractorEnabled reports whether the extractor with the given key
// participates in this extraction. With no allow-list set, all do.
func (o ContentExtractOptions) IsExtractorEnabled(key string) bool {
	if o.extractors == nil {
		return true
	}
	return o.extractors[key]
}
