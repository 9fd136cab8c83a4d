package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// ChatLogStore defines the interface for chat audit records.
type ChatLogStore interface {
	// Append stores one audit record. Generates an id when none is set.
	Append(ctx context.Context, record *ChatRecord) error
}

// ChatLogRepo provides methods for chat audit records.
// It implements the ChatLogStore interface.
type ChatLogRepo struct {
	db *sql.DB
}

// NewChatLogRepo creates a new ChatLogRepo.
func NewChatLogRepo(db *sql.DB) *ChatLogRepo {
	return &ChatLogRepo{db: db}
}

// Append stores one audit record.
func (r *ChatLogRepo) Append(ctx context.Context, record *ChatRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	scores := record.MatchScores
	if scores == "" {
		scores = "[]"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO chat_logs (id, user_id, prompt, answer, match_scores) VALUES (?, ?, ?, ?, ?)",
		record.ID, record.UserID, record.Prompt, record.Answer, scores)
	if err != nil {
		return fmt.Errorf("failed to append chat record: %w", err)
	}
	return nil
}
