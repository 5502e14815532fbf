package handlers

import (
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/open-overheid/woo-publicatie-api/internal/services"
	"github.com/open-overheid/woo-publicatie-api/internal/upload"
	"github.com/open-overheid/woo-publicatie-api/internal/utils"
)

type DocumentHandler struct {
	dossiers    services.DossierService
	processor   *services.FileProcessService
	maxFileSize int64
	logger      *utils.Logger
}

func NewDocumentHandler(dossiers services.DossierService, processor *services.FileProcessService, maxFileSize int64, logger *utils.Logger) *DocumentHandler {
	return &DocumentHandler{
		dossiers:    dossiers,
		processor:   processor,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// UploadFile accepts a single file or archive for a dossier and feeds it
// through the file process pipeline. The uploaded bytes are staged on
// local disk for the duration of the request.
func (h *DocumentHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	dossierID, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	dossier, err := h.dossiers.GetDossier(r.Context(), dossierID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if r.ContentLength > h.maxFileSize {
		respondError(w, h.logger, utils.NewBadRequestError("File size exceeds upload limit"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			respondError(w, h.logger, utils.NewBadRequestError("File size exceeds upload limit"))
			return
		}
		respondError(w, h.logger, utils.NewBadRequestError("Invalid form data"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, h.logger, utils.NewBadRequestError("No file provided"))
		return
	}
	defer file.Close()

	h.logger.Info("File upload attempt",
		"filename", header.Filename,
		"dossier_id", dossier.ID.String(),
		"size", header.Size)

	tmpPath, err := stageUpload(file)
	if err != nil {
		respondError(w, h.logger, utils.WrapInternal("Failed to stage upload", err))
		return
	}
	defer os.Remove(tmpPath)

	stored, err := h.processor.ProcessFile(r.Context(), upload.NewUploadedFile(tmpPath, header.Filename), dossier)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"stored":   stored,
		"filename": header.Filename,
	})
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
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

	respondJSON(w, h.logger, http.StatusOK, doc)
}

func stageUpload(file io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "woo-upload-*")
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
