package rag

import (
	"context"
	"errors"
	"strings"

	"paperchat/internal/contextutil"
	"paperchat/internal/knowledge"
	"paperchat/internal/llm"
	"paperchat/internal/service"
)

// StreamingLLMClient generates chat completions chunk by chunk.
type StreamingLLMClient interface {
	StreamComplete(ctx context.Context, messages []llm.Message, callback func(chunk string) error) (llm.StreamState, error)
}

// ChatStream answers prompt as a token stream. Retrieval runs up front and
// its failures degrade like in Chat; the single streamed completion is the
// answer, so there is no draft pass and no sentence attribution. The final
// stream state tells the caller whether the model finished cleanly.
func (o *Orchestrator) ChatStream(ctx context.Context, userID int64, prompt string, opts Options, callback func(chunk string) error) (llm.StreamState, error) {
	if strings.TrimSpace(prompt) == "" {
		return llm.StateAbortedEarly, &service.ValidationError{Field: "prompt", Message: "prompt cannot be empty"}
	}
	if o.streamer == nil {
		return llm.StateAbortedEarly, errors.New("streaming client not configured")
	}
	logger := contextutil.LoggerFromContext(ctx)

	papers, err := o.searcher.Search(ctx, prompt, opts.PaperLimit)
	if err != nil {
		logger.Warn("paper retrieval failed, streaming without context", "error", err)
		papers = nil
	}
	var triples []knowledge.Triple
	if opts.UseKG && o.triples != nil {
		triples, err = o.triples.Query(ctx, prompt, opts.TripleLimit)
		if err != nil {
			logger.Warn("triple retrieval failed, continuing without triples", "error", err)
			triples = nil
		}
	}

	messages := []llm.Message{
		{Role: "system", Content: initialSystemPrompt},
		{Role: "user", Content: prompt},
	}
	if len(papers) > 0 || len(triples) > 0 {
		messages = []llm.Message{
			{Role: "system", Content: augmentedSystemPrompt},
			{Role: "user", Content: buildAugmentedPrompt(prompt, "", papers, triples)},
		}
	}

	var answer strings.Builder
	state, err := o.streamer.StreamComplete(ctx, messages, func(chunk string) error {
		answer.WriteString(chunk)
		return callback(chunk)
	})
	if err != nil {
		return state, service.Upstream(err, "streamed completion")
	}

	result := &ChatResult{Answer: answer.String(), Papers: papers, Triples: triples}
	o.logChat(ctx, userID, prompt, result)
	return state, nil
}
