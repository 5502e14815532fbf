package ingest

// ContentExtract is one named content artifact produced by an extractor:
// a text blob, a rendered page image, structured metadata.
type ContentExtract struct {
	Key     string `json:"key"`
	Content []byte `json:"content"`
}

// ContentExtractCollection is the aggregate extraction result: the
// extracts in extractor-registration order plus a failure flag. An empty
// collection without the failure flag is valid (no extractor applicable);
// the two outcomes must never be conflated.
type ContentExtractCollection struct {
	extracts []ContentExtract
	failure  bool
}

func (c *ContentExtractCollection) Append(extract ContentExtract) {
	c.extracts = append(c.extracts, extract)
}

// MarkAsFailure flags the collection as the result of an unrecoverable
// error (or a never-uploaded source file).
func (c *ContentExtractCollection) MarkAsFailure() {
	c.failure = true
}

func (c *ContentExtractCollection) IsFailure() bool {
	return c.failure
}

func (c *ContentExtractCollection) IsEmpty() bool {
	return len(c.extracts) == 0
}

// Extracts returns the extracts in the order they were produced.
func (c *ContentExtractCollection) Extracts() []ContentExtract {
	return c.extracts
}

// Get returns the extract for the given extractor key, if present.
func (c *ContentExtractCollection) Get(key string) (ContentExtract, bool) {
	for _, extract := range c.extracts {
		if extract.Key == key {
			return extract, true
		}
	}
	return ContentExtract{}, false
}
