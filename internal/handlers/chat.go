package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"paperchat/internal/contextutil"
	"paperchat/internal/knowledge"
	"paperchat/internal/llm"
	"paperchat/internal/match"
	"paperchat/internal/rag"
)

// ChatService runs the retrieval-augmented chat pipeline.
type ChatService interface {
	Chat(ctx context.Context, userID int64, prompt string, opts rag.Options) (*rag.ChatResult, error)
	ChatStream(ctx context.Context, userID int64, prompt string, opts rag.Options, callback func(chunk string) error) (llm.StreamState, error)
}

// ChatHandler handles HTTP requests for chat.
type ChatHandler struct {
	chat        ChatService
	paperLimit  int
	tripleLimit int
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat ChatService, paperLimit, tripleLimit int) *ChatHandler {
	return &ChatHandler{
		chat:        chat,
		paperLimit:  paperLimit,
		tripleLimit: tripleLimit,
	}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Prompt string `json:"prompt"`
	UserID int64  `json:"user_id"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	Answer           string              `json:"answer"`
	Papers           []PaperView         `json:"papers"`
	Matches          []match.PaperMatch  `json:"matches"`
	KnowledgeTriples []knowledge.Triple  `json:"knowledge_triples,omitempty"`
	KnowledgeMatches []match.TripleMatch `json:"knowledge_matches,omitempty"`
}

// swagger:route POST /api/chat chat postChat
// Answers a research question with supporting papers.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	h.serveChat(w, r, rag.Options{PaperLimit: h.paperLimit})
}

// swagger:route POST /api/chat/with-kg chat postChatWithKG
// Answers a research question with papers and knowledge-graph facts.
func (h *ChatHandler) ChatWithKG(w http.ResponseWriter, r *http.Request) {
	h.serveChat(w, r, rag.Options{UseKG: true, PaperLimit: h.paperLimit, TripleLimit: h.tripleLimit})
}

func (h *ChatHandler) serveChat(w http.ResponseWriter, r *http.Request, opts rag.Options) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.chat.Chat(ctx, req.UserID, req.Prompt, opts)
	if err != nil {
		handleServiceError(w, ctx, err, http.StatusServiceUnavailable, "Failed to process chat request")
		return
	}

	resp := ChatResponse{
		Answer:           result.Answer,
		Papers:           toPaperViews(result.Papers),
		Matches:          result.Matches,
		KnowledgeTriples: result.Triples,
		KnowledgeMatches: result.TripleMatches,
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// ChatStream streams the answer over Server-Sent Events, terminated by a
// "data: [DONE]" sentinel.
func (h *ChatHandler) ChatStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body for streaming", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	state, err := h.chat.ChatStream(ctx, req.UserID, req.Prompt, rag.Options{PaperLimit: h.paperLimit}, func(chunk string) error {
		if _, err := fmt.Fprintf(w, "data: %s\n\n", chunk); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		logger.ErrorContext(ctx, "error streaming chat", "error", err)
		_, _ = fmt.Fprintf(w, "data: {\"error\":\"%s\"}\n\n", "chat stream failed")
		flusher.Flush()
		return
	}
	if state == llm.StateAbortedEarly {
		logger.WarnContext(ctx, "upstream stream ended early")
	}

	_, _ = fmt.Fprintf(w, "data: [DONE]\n\n")
	flusher.Flush()
}
