package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InteractionStore defines the interface for the append-only user activity log.
type InteractionStore interface {
	// Append records one interaction. The log is insert-only, so concurrent
	// appends from simultaneous requests are safe.
	Append(ctx context.Context, userID int64, paperID, actionType string) error
	// ListRecentPapers returns the papers a user most recently interacted
	// with for a given action type, newest first.
	ListRecentPapers(ctx context.Context, userID int64, actionType string, limit int) ([]Paper, error)
}

// InteractionRepo provides methods for interaction log operations.
// It implements the InteractionStore interface.
type InteractionRepo struct {
	db *sql.DB
}

// NewInteractionRepo creates a new InteractionRepo.
func NewInteractionRepo(db *sql.DB) *InteractionRepo {
	return &InteractionRepo{db: db}
}

// Append records one interaction.
func (r *InteractionRepo) Append(ctx context.Context, userID int64, paperID, actionType string) error {
	if paperID == "" {
		return fmt.Errorf("paper id is required")
	}
	if actionType == "" {
		return fmt.Errorf("action type is required")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO interactions (user_id, paper_id, action_type) VALUES (?, ?, ?)",
		userID, paperID, actionType)
	if err != nil {
		return fmt.Errorf("failed to append interaction: %w", err)
	}
	return nil
}

// ListRecentPapers returns the papers the user most recently interacted with
// for the given action type, newest first. Papers deleted since the
// interaction was logged are skipped by the join.
func (r *InteractionRepo) ListRecentPapers(ctx context.Context, userID int64, actionType string, limit int) ([]Paper, error) {
	if limit <= 0 {
		return []Paper{}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.title, p.authors, p.abstract, p.keywords, p.published_date,
		        p.pdf_url, p.embedded, p.kg_processed, p.created_at, p.updated_at
		 FROM interactions i
		 JOIN papers p ON p.id = i.paper_id
		 WHERE i.user_id = ? AND i.action_type = ?
		 ORDER BY i.timestamp DESC, i.id DESC
		 LIMIT ?`,
		userID, actionType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent interactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectPapers(rows)
}
