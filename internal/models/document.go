package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is a catalog entity inside a dossier. DocumentNr is the full
// matching key ("<prefix>-<numeric id>"), DocumentID the numeric part as
// parsed from uploaded filenames.
type Document struct {
	ID         uuid.UUID `json:"id" db:"id"`
	DossierID  uuid.UUID `json:"dossier_id" db:"dossier_id"`
	DocumentNr string    `json:"document_nr" db:"document_nr"`
	DocumentID string    `json:"document_id" db:"document_id"`
	FamilyID   int       `json:"family_id" db:"family_id"`
	ThreadID   int       `json:"thread_id" db:"thread_id"`
	Suspended  bool      `json:"suspended" db:"suspended"`
	Withdrawn  bool      `json:"withdrawn" db:"withdrawn"`
	FileInfo   FileInfo  `json:"file_info"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

func (d *Document) GetID() uuid.UUID {
	return d.ID
}

func (d *Document) GetFileInfo() *FileInfo {
	return &d.FileInfo
}

// ShouldBeUploaded reports whether this document is eligible to receive
// file bytes. Suspended or withdrawn documents keep their catalog entry
// but must not get content attached.
func (d *Document) ShouldBeUploaded() bool {
	return !d.Suspended && !d.Withdrawn
}

type CreateDocumentRequest struct {
	DocumentID string `json:"document_id"`
	FamilyID   int    `json:"family_id"`
	ThreadID   int    `json:"thread_id"`
}
