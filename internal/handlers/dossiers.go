package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/open-overheid/woo-publicatie-api/internal/models"
	"github.com/open-overheid/woo-publicatie-api/internal/services"
	"github.com/open-overheid/woo-publicatie-api/internal/utils"
)

type DossierHandler struct {
	service services.DossierService
	logger  *utils.Logger
}

func NewDossierHandler(service services.DossierService, logger *utils.Logger) *DossierHandler {
	return &DossierHandler{
		service: service,
		logger:  logger,
	}
}

func (h *DossierHandler) CreateDossier(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDossierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, utils.NewBadRequestError("Invalid request body"))
		return
	}

	dossier, err := h.service.CreateDossier(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, dossier)
}

func (h *DossierHandler) GetDossier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	dossier, err := h.service.GetDossier(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, dossier)
}

func (h *DossierHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req models.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, utils.NewBadRequestError("Invalid request body"))
		return
	}

	doc, err := h.service.CreateDocument(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, doc)
}

func (h *DossierHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	docs, err := h.service.ListDocuments(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, docs)
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, utils.NewBadRequestError("Invalid identifier")
	}
	return id, nil
}
