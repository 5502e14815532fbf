package models

import (
	"github.com/google/uuid"
)

// SourceType is the coarse file classification used to route a file
// through ingestion (upload dispatch) and extraction (extractor support).
type SourceType string

const (
	SourceTypePDF     SourceType = "pdf"
	SourceTypeDoc     SourceType = "doc"
	SourceTypeText    SourceType = "text"
	SourceTypeAudio   SourceType = "audio"
	SourceTypeUnknown SourceType = "unknown"
)

// FileInfo is the file metadata record owned 1:1 by a catalog entity.
// It is mutated only by the file storer (on upload) and by the hash
// backfill step: once Hash is set it is never overwritten.
type FileInfo struct {
	Name        string     `json:"name" db:"file_name"`
	Size        int64      `json:"size" db:"file_size"`
	ContentType string     `json:"content_type" db:"file_content_type"`
	SourceType  SourceType `json:"source_type" db:"file_source_type"`
	Uploaded    bool       `json:"uploaded" db:"file_uploaded"`
	Hash        *string    `json:"hash,omitempty" db:"file_hash"`
	Paginatable bool       `json:"paginatable" db:"file_paginatable"`
	PageCount   int        `json:"page_count" db:"file_page_count"`
}

// IsUploaded reports whether the bytes for this file exist in durable storage.
func (f *FileInfo) IsUploaded() bool {
	return f.Uploaded
}

// HasHash reports whether the content hash has been computed.
func (f *FileInfo) HasHash() bool {
	return f.Hash != nil && *f.Hash != ""
}

// SetHash records the content hash. The first value wins; later calls
// are ignored so entities hashed before an upload replace keep their hash
// until the storer explicitly resets it.
func (f *FileInfo) SetHash(hash string) {
	if f.HasHash() {
		return
	}
	f.Hash = &hash
}

// EntityWithFileInfo is any catalog entity (document, attachment, main
// document) that owns exactly one FileInfo.
type EntityWithFileInfo interface {
	GetID() uuid.UUID
	GetFileInfo() *FileInfo
}
