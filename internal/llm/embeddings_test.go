package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func embeddingsServer(t *testing.T, size int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req EmbeddingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		resp := EmbeddingsResponse{Data: make([]EmbeddingData, len(req.Input))}
		for i := range req.Input {
			vec := make([]float64, size)
			vec[0] = float64(i) + 0.5
			resp.Data[i] = EmbeddingData{Embedding: vec}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestEmbeddingsClient_EmbedTexts(t *testing.T) {
	server := embeddingsServer(t, 4)
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "key", "model", 4)
	vectors, err := client.EmbedTexts(t.Context(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vectors))
	}
	if len(vectors[0]) != 4 {
		t.Errorf("vector size = %d, want 4", len(vectors[0]))
	}
	if vectors[1][0] != 1.5 {
		t.Errorf("vectors[1][0] = %v, want 1.5", vectors[1][0])
	}
}

func TestEmbeddingsClient_EmbedTexts_SizeMismatch(t *testing.T) {
	server := embeddingsServer(t, 4)
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "key", "model", 8)
	if _, err := client.EmbedTexts(t.Context(), []string{"one"}); err == nil {
		t.Error("EmbedTexts() should reject vectors of the wrong size")
	}
}

func TestEmbeddingsClient_EmbedTexts_EmptyInput(t *testing.T) {
	client := NewEmbeddingsClient("http://unused", "key", "model", 4)
	if _, err := client.EmbedTexts(t.Context(), nil); err == nil {
		t.Error("EmbedTexts() should reject empty input")
	}
}

func TestEmbeddingsClient_EmbedTexts_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(EmbeddingsResponse{Data: []EmbeddingData{}})
	}))
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "key", "model", 4)
	if _, err := client.EmbedTexts(t.Context(), []string{"one"}); err == nil {
		t.Error("EmbedTexts() should reject a response with the wrong count")
	}
}
