package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/open-overheid/woo-publicatie-api/internal/handlers"
	"github.com/open-overheid/woo-publicatie-api/internal/ingest"
	"github.com/open-overheid/woo-publicatie-api/internal/middleware"
	"github.com/open-overheid/woo-publicatie-api/internal/services"
	"github.com/open-overheid/woo-publicatie-api/internal/utils"
)

func NewRouter(
	dossierService services.DossierService,
	processor *services.FileProcessService,
	extractService *ingest.ContentExtractService,
	maxFileSize int64,
	logger *utils.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	dossierHandler := handlers.NewDossierHandler(dossierService, logger)
	documentHandler := handlers.NewDocumentHandler(dossierService, processor, maxFileSize, logger)
	extractHandler := handlers.NewExtractHandler(dossierService, extractService, logger)

	// Routes
	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// Dossier endpoints
	api.HandleFunc("/dossiers", dossierHandler.CreateDossier).Methods(http.MethodPost)
	api.HandleFunc("/dossiers/{id}", dossierHandler.GetDossier).Methods(http.MethodGet)
	api.HandleFunc("/dossiers/{id}/documents", dossierHandler.CreateDocument).Methods(http.MethodPost)
	api.HandleFunc("/dossiers/{id}/documents", dossierHandler.ListDocuments).Methods(http.MethodGet)
	api.HandleFunc("/dossiers/{id}/upload", documentHandler.UploadFile).Methods(http.MethodPost)

	// Document endpoints
	api.HandleFunc("/documents/{id}", documentHandler.GetDocument).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/extracts", extractHandler.GetExtracts).Methods(http.MethodGet)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}
