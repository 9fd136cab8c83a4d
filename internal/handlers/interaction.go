package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"paperchat/internal/contextutil"
)

// InteractionAppender records one interaction in the activity log.
type InteractionAppender interface {
	Append(ctx context.Context, userID int64, paperID, actionType string) error
}

// InteractionHandler records user activity against papers.
type InteractionHandler struct {
	interactions InteractionAppender
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(interactions InteractionAppender) *InteractionHandler {
	return &InteractionHandler{interactions: interactions}
}

// InteractionRequest represents the HTTP request payload for an interaction.
type InteractionRequest struct {
	UserID     int64  `json:"user_id"`
	ActionType string `json:"action_type"`
}

// swagger:route POST /api/papers/{paperID}/interactions interactions postInteraction
// Appends one interaction to the activity log.
func (h *InteractionHandler) Record(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	paperID := chi.URLParam(r, "paperID")
	if paperID == "" {
		writeError(w, http.StatusBadRequest, "Paper ID is required")
		return
	}

	var req InteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.ActionType) == "" {
		writeError(w, http.StatusBadRequest, "Action type is required")
		return
	}

	if err := h.interactions.Append(ctx, req.UserID, paperID, req.ActionType); err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			writeError(w, http.StatusNotFound, "Paper not found")
			return
		}
		logger.ErrorContext(ctx, "failed to append interaction", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to record interaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
