package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/open-overheid/woo-publicatie-api/internal/models"
)

type Repository interface {
	CreateDossier(ctx context.Context, dossier *models.Dossier) error
	GetDossierByID(ctx context.Context, id uuid.UUID) (*models.Dossier, error)

	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocumentByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	FindByDossierAndDocumentNr(ctx context.Context, dossierID uuid.UUID, documentNr string) (*models.Document, error)
	ListDocumentsByDossier(ctx context.Context, dossierID uuid.UUID) ([]*models.Document, error)
	UpdateFileInfo(ctx context.Context, doc *models.Document) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateDossier(ctx context.Context, dossier *models.Dossier) error {
	query := `
		INSERT INTO dossiers (id, dossier_nr, document_prefix, title, summary, status, publication_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		dossier.ID.String(),
		dossier.DossierNr,
		dossier.DocumentPrefix,
		dossier.Title,
		dossier.Summary,
		dossier.Status,
		dossier.PublicationDate,
		dossier.CreatedAt,
		dossier.UpdatedAt,
	)

	return err
}

func (r *repository) GetDossierByID(ctx context.Context, id uuid.UUID) (*models.Dossier, error) {
	var dossier models.Dossier
	var rawID string

	query := `
		SELECT id, dossier_nr, document_prefix, title, summary, status, publication_date, created_at, updated_at
		FROM dossiers
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(
		&rawID,
		&dossier.DossierNr,
		&dossier.DocumentPrefix,
		&dossier.Title,
		&dossier.Summary,
		&dossier.Status,
		&dossier.PublicationDate,
		&dossier.CreatedAt,
		&dossier.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	dossier.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}

	return &dossier, nil
}

const documentColumns = `
	id, dossier_id, document_nr, document_id, family_id, thread_id, suspended, withdrawn,
	file_name, file_size, file_content_type, file_source_type, file_uploaded, file_hash,
	file_paginatable, file_page_count, created_at, updated_at
`

func (r *repository) CreateDocument(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID.String(),
		doc.DossierID.String(),
		doc.DocumentNr,
		doc.DocumentID,
		doc.FamilyID,
		doc.ThreadID,
		doc.Suspended,
		doc.Withdrawn,
		doc.FileInfo.Name,
		doc.FileInfo.Size,
		doc.FileInfo.ContentType,
		doc.FileInfo.SourceType,
		doc.FileInfo.Uploaded,
		doc.FileInfo.Hash,
		doc.FileInfo.Paginatable,
		doc.FileInfo.PageCount,
		doc.CreatedAt,
		doc.UpdatedAt,
	)

	return err
}

func (r *repository) GetDocumentByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id.String())
	return scanDocument(row)
}

func (r *repository) FindByDossierAndDocumentNr(ctx context.Context, dossierID uuid.UUID, documentNr string) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE dossier_id = $1 AND document_nr = $2`

	row := r.db.QueryRowContext(ctx, query, dossierID.String(), documentNr)
	return scanDocument(row)
}

func (r *repository) ListDocumentsByDossier(ctx context.Context, dossierID uuid.UUID) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE dossier_id = $1 ORDER BY document_nr`

	rows, err := r.db.QueryContext(ctx, query, dossierID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

func (r *repository) UpdateFileInfo(ctx context.Context, doc *models.Document) error {
	query := `
		UPDATE documents
		SET file_name = $2, file_size = $3, file_content_type = $4, file_source_type = $5,
		    file_uploaded = $6, file_hash = $7, file_paginatable = $8, file_page_count = $9,
		    updated_at = $10
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID.String(),
		doc.FileInfo.Name,
		doc.FileInfo.Size,
		doc.FileInfo.ContentType,
		doc.FileInfo.SourceType,
		doc.FileInfo.Uploaded,
		doc.FileInfo.Hash,
		doc.FileInfo.Paginatable,
		doc.FileInfo.PageCount,
		time.Now(),
	)

	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	var rawID, rawDossierID string

	err := row.Scan(
		&rawID,
		&rawDossierID,
		&doc.DocumentNr,
		&doc.DocumentID,
		&doc.FamilyID,
		&doc.ThreadID,
		&doc.Suspended,
		&doc.Withdrawn,
		&doc.FileInfo.Name,
		&doc.FileInfo.Size,
		&doc.FileInfo.ContentType,
		&doc.FileInfo.SourceType,
		&doc.FileInfo.Uploaded,
		&doc.FileInfo.Hash,
		&doc.FileInfo.Paginatable,
		&doc.FileInfo.PageCount,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if doc.ID, err = uuid.Parse(rawID); err != nil {
		return nil, err
	}
	if doc.DossierID, err = uuid.Parse(rawDossierID); err != nil {
		return nil, err
	}

	return &doc, nil
}
