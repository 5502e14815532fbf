package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/open-overheid/woo-publicatie-api/internal/utils"
)

func respondJSON(w http.ResponseWriter, logger *utils.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, logger *utils.Logger, err error) {
	var status int
	var message string

	switch e := err.(type) {
	case *utils.AppError:
		status = e.StatusCode
		message = e.Message
	default:
		status = http.StatusInternalServerError
		message = "Internal server error"
	}

	logger.Error("Request error", "status", status, "error", err.Error())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
