package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"paperchat/internal/contextutil"
)

// CollectionChecker reports whether a vector collection is reachable.
type CollectionChecker interface {
	CollectionExists(ctx context.Context, collection string) (bool, error)
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	vectorStore        CollectionChecker
	db                 *sql.DB
	paperCollection    string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(vectorStore CollectionChecker, db *sql.DB, paperCollection string) *HealthHandler {
	return &HealthHandler{
		vectorStore:        vectorStore,
		db:                 db,
		paperCollection:    paperCollection,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// swagger:route GET /api/health health getHealth
// Returns the health status of the system and its dependencies.
// Returns 200 OK if healthy, 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	if h.checkVectorStore(checkCtx, logger) {
		checks["vector_store"] = "ok"
	} else {
		checks["vector_store"] = "error"
		issues = append(issues, "vector_store_unavailable")
	}

	if err := h.db.PingContext(checkCtx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		checks["database"] = "error"
		issues = append(issues, "database_unavailable")
	} else {
		checks["database"] = "ok"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(ctx, w, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	})
}

// checkVectorStore checks if the vector store is accessible.
func (h *HealthHandler) checkVectorStore(ctx context.Context, logger *slog.Logger) bool {
	exists, err := h.vectorStore.CollectionExists(ctx, h.paperCollection)
	if err != nil {
		logger.WarnContext(ctx, "vector store health check failed", "error", err)
		return false
	}
	if !exists {
		logger.WarnContext(ctx, "vector store collection does not exist", "collection", h.paperCollection)
		return false
	}
	return true
}
