package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"paperchat/internal/contextutil"
	"paperchat/internal/knowledge"
	"paperchat/internal/llm"
	"paperchat/internal/match"
	"paperchat/internal/service"
	"paperchat/internal/storage"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_rag.go -package=mocks paperchat/internal/rag LLMClient,StreamingLLMClient,Searcher,TripleRetriever,PaperGetter,AnswerMatcher,ChatLogStore

// LLMClient generates chat completions.
type LLMClient interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Searcher retrieves papers relevant to a query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]storage.Paper, error)
}

// TripleRetriever retrieves knowledge-graph triples relevant to a query.
type TripleRetriever interface {
	Query(ctx context.Context, query string, limit int) ([]knowledge.Triple, error)
}

// PaperGetter resolves papers by id.
type PaperGetter interface {
	GetByID(ctx context.Context, id string) (*storage.Paper, error)
}

// AnswerMatcher attributes answer sentences to papers and triples.
type AnswerMatcher interface {
	MatchPapers(ctx context.Context, answer string, papers []storage.Paper) []match.PaperMatch
	MatchTriples(ctx context.Context, answer string, triples []knowledge.Triple) []match.TripleMatch
}

// ChatLogStore persists the chat audit trail.
type ChatLogStore interface {
	Append(ctx context.Context, record *storage.ChatRecord) error
}

// ChatResult is the full outcome of one orchestrated chat turn.
type ChatResult struct {
	Answer        string              `json:"answer"`
	Papers        []storage.Paper     `json:"papers"`
	Matches       []match.PaperMatch  `json:"matches"`
	Triples       []knowledge.Triple  `json:"triples,omitempty"`
	TripleMatches []match.TripleMatch `json:"triple_matches,omitempty"`
}

// Options tunes one chat turn.
type Options struct {
	UseKG       bool
	PaperLimit  int
	TripleLimit int
}

// Orchestrator runs the retrieval-augmented chat pipeline: draft an answer,
// retrieve supporting material, answer again with that material in context,
// then attribute the final answer back to its sources.
type Orchestrator struct {
	llm      LLMClient
	streamer StreamingLLMClient
	searcher Searcher
	triples  TripleRetriever
	papers   PaperGetter
	matcher  AnswerMatcher
	audit    ChatLogStore
}

func NewOrchestrator(llmClient LLMClient, streamer StreamingLLMClient, searcher Searcher, triples TripleRetriever, papers PaperGetter, matcher AnswerMatcher, audit ChatLogStore) *Orchestrator {
	return &Orchestrator{
		llm:      llmClient,
		streamer: streamer,
		searcher: searcher,
		triples:  triples,
		papers:   papers,
		matcher:  matcher,
		audit:    audit,
	}
}

// Chat answers prompt for userID. Only the initial completion is fatal;
// every later stage degrades: retrieval failures shrink the context, a
// failed final completion falls back to the initial answer, and matching
// and auditing are best effort.
func (o *Orchestrator) Chat(ctx context.Context, userID int64, prompt string, opts Options) (*ChatResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, &service.ValidationError{Field: "prompt", Message: "prompt cannot be empty"}
	}
	logger := contextutil.LoggerFromContext(ctx)

	initial, err := o.llm.Complete(ctx, []llm.Message{
		{Role: "system", Content: initialSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, service.Upstream(err, "initial completion")
	}

	papers, err := o.searcher.Search(ctx, prompt, opts.PaperLimit)
	if err != nil {
		logger.Warn("paper retrieval failed, answering without context", "error", err)
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

	answer := initial
	if len(papers) > 0 || len(triples) > 0 {
		final, err := o.llm.Complete(ctx, []llm.Message{
			{Role: "system", Content: augmentedSystemPrompt},
			{Role: "user", Content: buildAugmentedPrompt(prompt, initial, papers, triples)},
		})
		if err != nil {
			logger.Warn("augmented completion failed, keeping initial answer", "error", err)
		} else {
			answer = final
		}
	}

	result := &ChatResult{
		Answer:        answer,
		Papers:        papers,
		Matches:       o.matcher.MatchPapers(ctx, answer, papers),
		Triples:       triples,
		TripleMatches: o.matcher.MatchTriples(ctx, answer, triples),
	}
	result.Papers = o.collectPapers(ctx, result)

	o.logChat(ctx, userID, prompt, result)
	return result, nil
}

// collectPapers dedupes the retrieved papers and pulls in papers that are
// only referenced through matched triples. Triple references that no longer
// resolve are skipped.
func (o *Orchestrator) collectPapers(ctx context.Context, result *ChatResult) []storage.Paper {
	logger := contextutil.LoggerFromContext(ctx)
	seen := make(map[string]bool, len(result.Papers))
	papers := make([]storage.Paper, 0, len(result.Papers))
	for _, p := range result.Papers {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		papers = append(papers, p)
	}
	for _, tm := range result.TripleMatches {
		id := tm.Triple.PaperID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		paper, err := o.papers.GetByID(ctx, id)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				logger.Warn("resolving triple paper failed", "paper_id", id, "error", err)
			} else {
				logger.Warn("matched triple references unknown paper, skipping", "paper_id", id)
			}
			continue
		}
		papers = append(papers, *paper)
	}
	return papers
}

// logChat appends the turn to the audit log. Failures are logged, never
// surfaced to the caller.
func (o *Orchestrator) logChat(ctx context.Context, userID int64, prompt string, result *ChatResult) {
	if o.audit == nil {
		return
	}
	scores := make([]float64, 0, len(result.Matches))
	for _, m := range result.Matches {
		scores = append(scores, m.Score)
	}
	encoded, err := json.Marshal(scores)
	if err != nil {
		encoded = []byte("[]")
	}
	record := &storage.ChatRecord{
		UserID:      userID,
		Prompt:      prompt,
		Answer:      result.Answer,
		MatchScores: string(encoded),
	}
	if err := o.audit.Append(ctx, record); err != nil {
		contextutil.LoggerFromContext(ctx).Warn("writing chat audit record failed", "error", err)
	}
}

const initialSystemPrompt = `You are a research assistant answering questions about scientific papers. Answer directly and concisely.`

const augmentedSystemPrompt = `You are a research assistant. Rewrite your draft answer using the retrieved papers and facts below. Begin by restating the question, stay focused on it, present the answer as ranked itemized points, and state clearly when the retrieved material is insufficient.`

// buildAugmentedPrompt lays out the question, the draft, and the retrieved
// context as one user message. Streaming sends no draft, so the draft block
// is omitted when empty.
func buildAugmentedPrompt(prompt, draft string, papers []storage.Paper, triples []knowledge.Triple) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", prompt)
	if draft != "" {
		fmt.Fprintf(&b, "\nDraft answer:\n%s\n", draft)
	}
	if len(papers) > 0 {
		b.WriteString("\nRetrieved papers:\n")
		for i, p := range papers {
			fmt.Fprintf(&b, "[%d] %s\n%s\n", i+1, p.Title, p.Abstract)
		}
	}
	if len(triples) > 0 {
		b.WriteString("\nRetrieved facts:\n")
		for _, t := range triples {
			fmt.Fprintf(&b, "- %s\n", t.Text())
		}
	}
	return b.String()
}
