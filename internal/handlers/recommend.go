package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"paperchat/internal/storage"
)

// RecommendService picks the next paper for a user.
type RecommendService interface {
	Recommend(ctx context.Context, userID int64, excludeID string) (*storage.Paper, error)
}

// RecommendHandler handles HTTP requests for recommendations.
type RecommendHandler struct {
	recommend RecommendService
}

// NewRecommendHandler creates a new RecommendHandler.
func NewRecommendHandler(recommend RecommendService) *RecommendHandler {
	return &RecommendHandler{recommend: recommend}
}

// RecommendResponse represents the HTTP response payload for a recommendation.
type RecommendResponse struct {
	Paper PaperView `json:"paper"`
}

// swagger:route GET /api/recommendations/{paperID} recommendations getRecommendation
// Recommends one paper to read next, never the one being viewed.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	paperID := chi.URLParam(r, "paperID")
	if paperID == "" {
		writeError(w, http.StatusBadRequest, "Paper ID is required")
		return
	}

	var userID int64
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "User ID must be an integer")
			return
		}
		userID = n
	}

	paper, err := h.recommend.Recommend(ctx, userID, paperID)
	if err != nil {
		handleServiceError(w, ctx, err, http.StatusBadGateway, "Failed to recommend a paper")
		return
	}

	writeJSON(ctx, w, http.StatusOK, RecommendResponse{Paper: toPaperView(*paper)})
}
