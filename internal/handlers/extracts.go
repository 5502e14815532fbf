package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/open-overheid/woo-publicatie-api/internal/ingest"
	"github.com/open-overheid/woo-publicatie-api/internal/services"
	"github.com/open-overheid/woo-publicatie-api/internal/utils"
)

type ExtractHandler struct {
	dossiers services.DossierService
	extracts *ingest.ContentExtractService
	logger   *utils.Logger
}

func NewExtractHandler(dossiers services.DossierService, extracts *ingest.ContentExtractService, logger *utils.Logger) *ExtractHandler {
	return &ExtractHandler{
		dossiers: dossiers,
		extracts: extracts,
		logger:   logger,
	}
}

// GetExtracts runs the extraction pipeline for a document. Extraction
// failures are not HTTP errors: the response carries an explicit failure
// flag so consumers can show "no preview available" instead.
func (h *ExtractHandler) GetExtracts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	doc, err := h.dossiers.GetDocument(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	options, err := optionsFromQuery(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	collection := h.extracts.GetExtracts(r.Context(), doc, options)

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"is_failure": collection.IsFailure(),
		"extracts":   collection.Extracts(),
	})
}

func optionsFromQuery(r *http.Request) (ingest.ContentExtractOptions, error) {
	options := ingest.NewContentExtractOptions()

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return options, utils.NewBadRequestError("Invalid page number")
		}
		options = options.WithPageNumber(page)
	}

	if r.URL.Query().Get("refresh") == "1" {
		options = options.WithRefresh()
	}

	if raw := r.URL.Query().Get("extractors"); raw != "" {
		options = options.WithExtractors(strings.Split(raw, ",")...)
	}

	return options, nil
}
