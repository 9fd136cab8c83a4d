package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is a client for an OpenAI-compatible chat completions API.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

// NewClient creates a new LLM client. Requests are bounded by a 60s timeout,
// matching the observed behavior of the completion service.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// ChatRequest represents the request payload for chat completions.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream,omitempty"`
}

// ChatChoice represents a single choice in the chat response.
type ChatChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// ChatResponse represents the response from the chat completions API.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Choices []ChatChoice `json:"choices"`
}

// Complete sends a non-streaming chat completion request and returns the
// generated text.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)

	payload := ChatRequest{
		Model:    c.Model,
		Messages: messages,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// StreamState is the terminal state of a streaming completion.
type StreamState int

const (
	// StateStreaming means the stream is still in progress. It is never a
	// terminal state of StreamComplete; it exists so the line parser can
	// express "keep going".
	StateStreaming StreamState = iota
	// StateDone means the server sent the [DONE] sentinel.
	StateDone
	// StateAbortedEarly means a non-prefixed or malformed line ended the
	// stream before the sentinel. This is a normal terminal state, not a
	// fault.
	StateAbortedEarly
)

func (s StreamState) String() string {
	switch s {
	case StateStreaming:
		return "streaming"
	case StateDone:
		return "done"
	case StateAbortedEarly:
		return "aborted_early"
	default:
		return "unknown"
	}
}

// StreamComplete sends a streaming chat completion request and calls the
// callback for each content chunk. The returned state reports how the stream
// terminated; AbortedEarly is not an error.
func (c *Client) StreamComplete(ctx context.Context, messages []Message, callback func(chunk string) error) (StreamState, error) {
	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)

	payload := ChatRequest{
		Model:    c.Model,
		Messages: messages,
		Stream:   true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return StateAbortedEarly, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return StateAbortedEarly, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return StateAbortedEarly, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return StateAbortedEarly, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	return parseStream(resp.Body, callback)
}

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
)

// parseStream consumes newline-delimited SSE chunks as a small state machine.
// Each "data: "-prefixed line carries a JSON delta; "data: [DONE]" transitions
// to Done; any non-prefixed or malformed line transitions to AbortedEarly.
// Both terminal states are normal ends of stream.
func parseStream(r io.Reader, callback func(chunk string) error) (StreamState, error) {
	scanner := bufio.NewScanner(r)
	state := StateStreaming

	for state == StateStreaming && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, dataPrefix) {
			state = StateAbortedEarly
			break
		}

		data := strings.TrimPrefix(line, dataPrefix)
		if data == doneSentinel {
			state = StateDone
			break
		}

		var streamResp struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
				FinishReason string `json:"finish_reason"`
			} `json:"choices"`
		}
		if err := json.Unmarshal([]byte(data), &streamResp); err != nil {
			state = StateAbortedEarly
			break
		}

		if len(streamResp.Choices) == 0 {
			continue
		}
		if chunk := streamResp.Choices[0].Delta.Content; chunk != "" {
			if err := callback(chunk); err != nil {
				return StateAbortedEarly, fmt.Errorf("callback error: %w", err)
			}
		}
		if streamResp.Choices[0].FinishReason != "" {
			state = StateDone
		}
	}

	if err := scanner.Err(); err != nil {
		return StateAbortedEarly, fmt.Errorf("failed to read stream: %w", err)
	}

	// Stream ended without a sentinel: the server closed the connection.
	if state == StateStreaming {
		state = StateAbortedEarly
	}

	return state, nil
}
