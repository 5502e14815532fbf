package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/open-overheid/woo-publicatie-api/internal/config"
	"github.com/open-overheid/woo-publicatie-api/internal/db"
	"github.com/open-overheid/woo-publicatie-api/internal/extractor"
	"github.com/open-overheid/woo-publicatie-api/internal/ingest"
	"github.com/open-overheid/woo-publicatie-api/internal/repository"
	"github.com/open-overheid/woo-publicatie-api/internal/router"
	"github.com/open-overheid/woo-publicatie-api/internal/services"
	"github.com/open-overheid/woo-publicatie-api/internal/storage"
	"github.com/open-overheid/woo-publicatie-api/internal/upload"
	"github.com/open-overheid/woo-publicatie-api/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Initialize database
	database, err := db.NewSQLiteDB(cfg.DBFile)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.DBFile, "internal/db/migrations"); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Object storage
	objectStorage, err := storage.NewS3Storage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize S3 storage", "error", err)
	}

	repo := repository.NewRepository(database)
	runner := storage.ExecRunner{}
	entityStorage := storage.NewEntityStorage(objectStorage, repo, runner, cfg.QpdfBinary, logger)

	// Extraction pipeline. Extractor order determines the order of
	// extracts in the resulting collections.
	extractCache := ingest.NewExtractCache(cfg.CacheMaxEntries, cfg.CacheTTL)
	extractors := []ingest.ContentExtractor{
		extractor.PDFTextExtractor{},
		extractor.PDFMetadataExtractor{},
		extractor.ThumbnailExtractor{},
		extractor.DocxTextExtractor{},
		extractor.PlainTextExtractor{},
	}
	extractService := ingest.NewContentExtractService(entityStorage, extractCache, extractors, logger)

	// Upload pipeline
	sevenZip := upload.NewSevenZipExtractor(cfg.SevenZipBinary, runner)
	preprocessor := upload.NewFilePreprocessor(upload.NewSevenZipStrategy(sevenZip))
	processor := services.NewFileProcessService(repo, entityStorage, preprocessor, extractCache, logger)

	dossierService := services.NewDossierService(repo, logger)

	// Setup HTTP router
	handler := router.NewRouter(dossierService, processor, extractService, cfg.MaxFileSize, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
