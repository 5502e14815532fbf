package models

import (
	"time"

	"github.com/google/uuid"
)

// DossierStatus is the editorial state of a dossier. Transitions between
// statuses are driven by an external workflow; this service only reads them.
type DossierStatus string

const (
	DossierStatusConcept   DossierStatus = "concept"
	DossierStatusScheduled DossierStatus = "scheduled"
	DossierStatusPublished DossierStatus = "published"
)

// Dossier is a publication case grouping related documents under one
// organisation. DocumentPrefix combines with a document's numeric id to
// form the document number used for matching uploaded files.
type Dossier struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	DossierNr       string        `json:"dossier_nr" db:"dossier_nr"`
	DocumentPrefix  string        `json:"document_prefix" db:"document_prefix"`
	Title           string        `json:"title" db:"title"`
	Summary         string        `json:"summary" db:"summary"`
	Status          DossierStatus `json:"status" db:"status"`
	PublicationDate *time.Time    `json:"publication_date,omitempty" db:"publication_date"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

type CreateDossierRequest struct {
	DossierNr      string `json:"dossier_nr"`
	DocumentPrefix string `json:"document_prefix"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
}
