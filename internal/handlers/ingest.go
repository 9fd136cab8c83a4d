package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"paperchat/internal/contextutil"
	"paperchat/internal/storage"
)

// PaperWriter inserts papers into the relational store.
type PaperWriter interface {
	Insert(ctx context.Context, paper *storage.Paper) error
}

// IngestPipeline pushes pending papers into the vector collections.
type IngestPipeline interface {
	Run(ctx context.Context) error
}

// IngestHandler accepts new papers and triggers the indexing pipeline.
type IngestHandler struct {
	papers   PaperWriter
	pipeline IngestPipeline
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(papers PaperWriter, pipeline IngestPipeline) *IngestHandler {
	return &IngestHandler{papers: papers, pipeline: pipeline}
}

// IngestRequest represents the HTTP request payload for ingestion. The
// paper list is optional; an empty body just re-runs the pipeline over
// whatever is still pending.
type IngestRequest struct {
	Papers []IngestPaper `json:"papers"`
}

// IngestPaper is one paper submitted for ingestion.
type IngestPaper struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	Abstract      string     `json:"abstract"`
	Keywords      []string   `json:"keywords"`
	PublishedDate *time.Time `json:"published_date"`
	PDFURL        string     `json:"pdf_url"`
}

// IngestResponse represents the HTTP response payload for ingestion.
type IngestResponse struct {
	Inserted int    `json:"inserted"`
	Status   string `json:"status"`
}

// swagger:route POST /api/ingest ingest postIngest
// Stores submitted papers and runs the embedding and extraction passes.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inserted := 0
	for _, p := range req.Papers {
		if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Title) == "" {
			writeError(w, http.StatusBadRequest, "Paper id and title are required")
			return
		}
		paper := storage.Paper{
			ID:            p.ID,
			Title:         p.Title,
			Authors:       p.Authors,
			Abstract:      p.Abstract,
			Keywords:      p.Keywords,
			PublishedDate: p.PublishedDate,
			PDFURL:        p.PDFURL,
		}
		if err := h.papers.Insert(ctx, &paper); err != nil {
			logger.ErrorContext(ctx, "failed to insert paper", "paper_id", p.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to store paper")
			return
		}
		inserted++
	}

	if err := h.pipeline.Run(ctx); err != nil {
		handleServiceError(w, ctx, err, http.StatusBadGateway, "Indexing pipeline failed")
		return
	}

	writeJSON(ctx, w, http.StatusOK, IngestResponse{Inserted: inserted, Status: "completed"})
}
