package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"paperchat/internal/handlers"
)

type stubInteractions struct {
	err       error
	gotPaper  string
	gotAction string
}

func (s *stubInteractions) Append(_ context.Context, _ int64, paperID, actionType string) error {
	s.gotPaper = paperID
	s.gotAction = actionType
	return s.err
}

func interactionRouter(store handlers.InteractionAppender) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/papers/{paperID}/interactions", handlers.NewInteractionHandler(store).Record)
	return r
}

func postInteraction(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/papers/p1/interactions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestInteractionHandler_Record(t *testing.T) {
	store := &stubInteractions{}
	rec := postInteraction(interactionRouter(store), `{"user_id":7,"action_type":"view"}`)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if store.gotPaper != "p1" || store.gotAction != "view" {
		t.Errorf("recorded %q/%q", store.gotPaper, store.gotAction)
	}
}

func TestInteractionHandler_Record_MissingAction(t *testing.T) {
	rec := postInteraction(interactionRouter(&stubInteractions{}), `{"user_id":7}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestInteractionHandler_Record_UnknownPaper(t *testing.T) {
	store := &stubInteractions{err: errors.New("failed to append interaction: FOREIGN KEY constraint failed")}
	rec := postInteraction(interactionRouter(store), `{"user_id":7,"action_type":"view"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestInteractionHandler_Record_StoreFailure(t *testing.T) {
	store := &stubInteractions{err: errors.New("disk full")}
	rec := postInteraction(interactionRouter(store), `{"user_id":7,"action_type":"view"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
