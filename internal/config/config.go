package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBFile   string
	LogLevel string

	// S3
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// External tools
	SevenZipBinary string
	QpdfBinary     string

	// Extract cache
	CacheMaxEntries int
	CacheTTL        time.Duration

	// Upload limits
	MaxFileSize int64
}

func Load() (*Config, error) {
	// Optional .env for local development; real env vars win.
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DBFile:            getEnv("DB_FILE", "data/woo.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		S3Endpoint:        getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:      getEnv("S3_BUCKET_NAME", "dossiers"),
		S3UseSSL:          getEnv("S3_USE_SSL", "false") == "true",
		SevenZipBinary:    getEnv("SEVEN_ZIP_BINARY", "7z"),
		QpdfBinary:        getEnv("QPDF_BINARY", "qpdf"),
		CacheMaxEntries:   getEnvInt("EXTRACT_CACHE_MAX_ENTRIES", 2048),
		CacheTTL:          getEnvDuration("EXTRACT_CACHE_TTL", 12*time.Hour),
		MaxFileSize:       256 * 1024 * 1024,
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
