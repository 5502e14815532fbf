package services

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/open-overheid/woo-publicatie-api/internal/models"
	"github.com/open-overheid/woo-publicatie-api/internal/repository"
	"github.com/open-overheid/woo-publicatie-api/internal/utils"
)

var dossierNrPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

type DossierService interface {
	CreateDossier(ctx context.Context, req *models.CreateDossierRequest) (*models.Dossier, error)
	GetDossier(ctx context.Context, id uuid.UUID) (*models.Dossier, error)
	CreateDocument(ctx context.Context, dossierID uuid.UUID, req *models.CreateDocumentRequest) (*models.Document, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListDocuments(ctx context.Context, dossierID uuid.UUID) ([]*models.Document, error)
}

type dossierService struct {
	repo   repository.Repository
	logger *utils.Logger
}

func NewDossierService(repo repository.Repository, logger *utils.Logger) DossierService {
	return &dossierService{repo: repo, logger: logger}
}

func (s *dossierService) CreateDossier(ctx context.Context, req *models.CreateDossierRequest) (*models.Dossier, error) {
	if !dossierNrPattern.MatchString(req.DossierNr) {
		return nil, utils.NewBadRequestError("Dossier number may only contain letters, numbers and dashes")
	}
	if req.DocumentPrefix == "" {
		return nil, utils.NewBadRequestError("Document prefix is required")
	}
	if len(req.Title) < 2 {
		return nil, utils.NewBadRequestError("Title is required")
	}

	now := time.Now()
	dossier := &models.Dossier{
		ID:             uuid.New(),
		DossierNr:      req.DossierNr,
		DocumentPrefix: req.DocumentPrefix,
		Title:          req.Title,
		Summary:        req.Summary,
		Status:         models.DossierStatusConcept,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateDossier(ctx, dossier); err != nil {
		s.logger.Error("Failed to create dossier", "error", err, "dossier_nr", req.DossierNr)
		return nil, utils.WrapInternal("Failed to create dossier", err)
	}

	s.logger.Info("Dossier created", "id", dossier.ID.String(), "dossier_nr", dossier.DossierNr)

	return dossier, nil
}

func (s *dossierService) GetDossier(ctx context.Context, id uuid.UUID) (*models.Dossier, error) {
	dossier, err := s.repo.GetDossierByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get dossier", "error", err, "id", id.String())
		return nil, utils.WrapInternal("Failed to retrieve dossier", err)
	}
	if dossier == nil {
		return nil, utils.NewNotFoundError("Dossier not found")
	}

	return dossier, nil
}

func (s *dossierService) CreateDocument(ctx context.Context, dossierID uuid.UUID, req *models.CreateDocumentRequest) (*models.Document, error) {
	if req.DocumentID == "" {
		return nil, utils.NewBadRequestError("Document ID is required")
	}

	dossier, err := s.GetDossier(ctx, dossierID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &models.Document{
		ID:         uuid.New(),
		DossierID:  dossier.ID,
		DocumentNr: dossier.DocumentPrefix + "-" + req.DocumentID,
		DocumentID: req.DocumentID,
		FamilyID:   req.FamilyID,
		ThreadID:   req.ThreadID,
		FileInfo: models.FileInfo{
			SourceType: models.SourceTypeUnknown,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		s.logger.Error("Failed to create document", "error", err, "document_nr", doc.DocumentNr)
		return nil, utils.WrapInternal("Failed to create document", err)
	}

	return doc, nil
}

func (s *dossierService) GetDocument(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc, err := s.repo.GetDocumentByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get document", "error", err, "id", id.String())
		return nil, utils.WrapInternal("Failed to retrieve document", err)
	}
	if doc == nil {
		return nil, utils.NewNotFoundError("Document not found")
	}

	return doc, nil
}

func (s *dossierService) ListDocuments(ctx context.Context, dossierID uuid.UUID) ([]*models.Document, error) {
	docs, err := s.repo.ListDocumentsByDossier(ctx, dossierID)
	if err != nil {
		s.logger.Error("Failed to list documents", "error", err, "dossier_id", dossierID.String())
		return nil, utils.WrapInternal("Failed to list documents", err)
	}

	return docs, nil
}
