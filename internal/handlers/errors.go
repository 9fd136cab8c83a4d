package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"paperchat/internal/contextutil"
	"paperchat/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// writeJSON writes a JSON response.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleServiceError maps service errors to HTTP status codes.
// upstreamStatus is the code used for external-service failures; chat
// endpoints pass 503, everything else 502.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, upstreamStatus int, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Resource not found")
		return
	}

	if errors.Is(err, service.ErrExternalService) {
		writeError(w, upstreamStatus, "External service error")
		return
	}

	writeError(w, http.StatusInternalServerError, defaultMsg)
}
