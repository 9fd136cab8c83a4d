package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"paperchat/internal/storage"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// SearchService retrieves papers for a query.
type SearchService interface {
	Search(ctx context.Context, query string, limit int) ([]storage.Paper, error)
	KeywordSearch(ctx context.Context, query string, limit int) ([]storage.Paper, error)
}

// SearchHandler handles HTTP requests for paper search.
type SearchHandler struct {
	search SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(search SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// SearchResponse represents the HTTP response payload for search.
type SearchResponse struct {
	Results []PaperView `json:"results"`
	Count   int         `json:"count"`
}

// swagger:route GET /api/search search getSearch
// Searches papers by semantic similarity with a keyword fallback.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query parameter is required")
		return
	}

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	searchType := r.URL.Query().Get("type")
	var (
		papers []storage.Paper
		err    error
	)
	switch searchType {
	case "", "answer":
		papers, err = h.search.Search(ctx, query, limit)
	case "keyword":
		papers, err = h.search.KeywordSearch(ctx, query, limit)
	default:
		writeError(w, http.StatusBadRequest, "Type must be keyword or answer")
		return
	}
	if err != nil {
		handleServiceError(w, ctx, err, http.StatusBadGateway, "Failed to search papers")
		return
	}

	resp := SearchResponse{
		Results: toPaperViews(papers),
		Count:   len(papers),
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
