package llm

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseStream(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantState StreamState
		wantText  string
		wantErr   bool
	}{
		{
			name: "clean stream with sentinel",
			input: "data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n" +
				"\n" +
				"data: {\"choices\":[{\"delta\":{\"content\":\" world\"}}]}\n" +
				"data: [DONE]\n",
			wantState: StateDone,
			wantText:  "Hello world",
		},
		{
			name: "finish reason terminates",
			input: "data: {\"choices\":[{\"delta\":{\"content\":\"Hi\"},\"finish_reason\":\"stop\"}]}\n" +
				"data: {\"choices\":[{\"delta\":{\"content\":\"ignored\"}}]}\n",
			wantState: StateDone,
			wantText:  "Hi",
		},
		{
			name: "non-prefixed line aborts early",
			input: "data: {\"choices\":[{\"delta\":{\"content\":\"Hi\"}}]}\n" +
				"event: ping\n" +
				"data: {\"choices\":[{\"delta\":{\"content\":\"ignored\"}}]}\n",
			wantState: StateAbortedEarly,
			wantText:  "Hi",
		},
		{
			name:      "malformed json aborts early",
			input:     "data: {not json}\n",
			wantState: StateAbortedEarly,
		},
		{
			name: "eof without sentinel aborts early",
			input: "data: {\"choices\":[{\"delta\":{\"content\":\"cut \"}}]}\n" +
				"data: {\"choices\":[{\"delta\":{\"content\":\"off\"}}]}\n",
			wantState: StateAbortedEarly,
			wantText:  "cut off",
		},
		{
			name:      "empty chunk without content skipped",
			input:     "data: {\"choices\":[]}\ndata: [DONE]\n",
			wantState: StateDone,
		},
		{
			name:      "empty stream",
			input:     "",
			wantState: StateAbortedEarly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got strings.Builder
			state, err := parseStream(strings.NewReader(tt.input), func(chunk string) error {
				got.WriteString(chunk)
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseStream() error = %v, wantErr %v", err, tt.wantErr)
			}
			if state != tt.wantState {
				t.Errorf("state = %v, want %v", state, tt.wantState)
			}
			if got.String() != tt.wantText {
				t.Errorf("text = %q, want %q", got.String(), tt.wantText)
			}
		})
	}
}

func TestParseStream_CallbackError(t *testing.T) {
	input := "data: {\"choices\":[{\"delta\":{\"content\":\"Hi\"}}]}\n"
	state, err := parseStream(strings.NewReader(input), func(string) error {
		return errors.New("client went away")
	})
	if err == nil {
		t.Fatal("parseStream() should surface callback errors")
	}
	if state != StateAbortedEarly {
		t.Errorf("state = %v, want StateAbortedEarly", state)
	}
}

func TestClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", auth)
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Stream {
			t.Error("Complete() must not request streaming")
		}

		resp := ChatResponse{
			Choices: []ChatChoice{{Message: Message{Role: "assistant", Content: "pong"}}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")
	reply, err := client.Complete(t.Context(), []Message{{Role: "user", Content: "ping"}})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "pong" {
		t.Errorf("Complete() = %q, want pong", reply)
	}
}

func TestClient_Complete_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "model")
	if _, err := client.Complete(t.Context(), []Message{{Role: "user", Content: "ping"}}); err == nil {
		t.Error("Complete() should fail on non-200 status")
	}
}

func TestClient_StreamComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if !req.Stream {
			t.Error("StreamComplete() must request streaming")
		}

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(
			"data: {\"choices\":[{\"delta\":{\"content\":\"str\"}}]}\n\n" +
				"data: {\"choices\":[{\"delta\":{\"content\":\"eamed\"}}]}\n\n" +
				"data: [DONE]\n\n"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "model")
	var got strings.Builder
	state, err := client.StreamComplete(t.Context(), []Message{{Role: "user", Content: "ping"}}, func(chunk string) error {
		got.WriteString(chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamComplete() error = %v", err)
	}
	if state != StateDone {
		t.Errorf("state = %v, want StateDone", state)
	}
	if got.String() != "streamed" {
		t.Errorf("streamed text = %q, want %q", got.String(), "streamed")
	}
}

func TestStreamState_String(t *testing.T) {
	cases := map[StreamState]string{
		StateStreaming:    "streaming",
		StateDone:         "done",
		StateAbortedEarly: "aborted_early",
		StreamState(99):   "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("String(%d) = %q, want %q", state, got, want)
		}
	}
}
