package storage

import (
	"context"
	"fmt"
	"testing"
)

func interactionFixture(t *testing.T) (*PaperRepo, *InteractionRepo) {
	t.Helper()
	papers := testDB(t)
	return papers, NewInteractionRepo(papers.db)
}

func TestInteractionRepo_AppendAndList(t *testing.T) {
	papers, interactions := interactionFixture(t)
	for i := 1; i <= 3; i++ {
		insertPaper(t, papers, Paper{ID: fmt.Sprintf("p%d", i), Title: fmt.Sprintf("Paper %d", i)})
	}

	ctx := context.Background()
	for _, id := range []string{"p1", "p2", "p3"} {
		if err := interactions.Append(ctx, 7, id, "view"); err != nil {
			t.Fatalf("Append(%s) error = %v", id, err)
		}
	}
	if err := interactions.Append(ctx, 7, "p1", "like"); err != nil {
		t.Fatalf("Append(like) error = %v", err)
	}
	if err := interactions.Append(ctx, 99, "p2", "view"); err != nil {
		t.Fatalf("Append(other user) error = %v", err)
	}

	recent, err := interactions.ListRecentPapers(ctx, 7, "view", 2)
	if err != nil {
		t.Fatalf("ListRecentPapers() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d papers, want 2", len(recent))
	}
	if recent[0].ID != "p3" || recent[1].ID != "p2" {
		t.Errorf("recent order = %s, %s; want p3, p2 (newest first)", recent[0].ID, recent[1].ID)
	}
}

func TestInteractionRepo_Append_Validation(t *testing.T) {
	_, interactions := interactionFixture(t)
	ctx := context.Background()

	if err := interactions.Append(ctx, 1, "", "view"); err == nil {
		t.Error("Append() should reject an empty paper id")
	}
	if err := interactions.Append(ctx, 1, "p1", ""); err == nil {
		t.Error("Append() should reject an empty action type")
	}
}

func TestInteractionRepo_Append_UnknownPaper(t *testing.T) {
	_, interactions := interactionFixture(t)

	err := interactions.Append(context.Background(), 1, "missing", "view")
	if err == nil {
		t.Error("Append() should fail the foreign key check for unknown papers")
	}
}

func TestChatLogRepo_Append(t *testing.T) {
	papers := testDB(t)
	chatLogs := NewChatLogRepo(papers.db)

	record := &ChatRecord{UserID: 7, Prompt: "question", Answer: "answer"}
	if err := chatLogs.Append(context.Background(), record); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if record.ID == "" {
		t.Error("Append() should generate an id")
	}

	var scores string
	row := papers.db.QueryRow("SELECT match_scores FROM chat_logs WHERE id = ?", record.ID)
	if err := row.Scan(&scores); err != nil {
		t.Fatalf("failed to read stored record: %v", err)
	}
	if scores != "[]" {
		t.Errorf("match_scores = %q, want default []", scores)
	}
}
