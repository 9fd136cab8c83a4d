package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"paperchat/internal/contextutil"
	"paperchat/internal/service"
	"paperchat/internal/storage"
)

const (
	historyLimit = 5
	maxTerms     = 3
)

// InteractionStore is the slice of the interaction log the engine reads.
type InteractionStore interface {
	ListRecentPapers(ctx context.Context, userID int64, actionType string, limit int) ([]storage.Paper, error)
}

// PaperStore supplies the random fallback.
type PaperStore interface {
	Random(ctx context.Context, excludeID string) (*storage.Paper, error)
}

// Searcher retrieves papers for an interest query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]storage.Paper, error)
}

// Engine recommends the next paper to read: it distills the user's recent
// views into a few interest terms and searches with them, falling back to a
// random paper for cold users.
type Engine struct {
	interactions InteractionStore
	papers       PaperStore
	searcher     Searcher
}

func NewEngine(interactions InteractionStore, papers PaperStore, searcher Searcher) *Engine {
	return &Engine{interactions: interactions, papers: papers, searcher: searcher}
}

// Recommend picks one paper for userID, never the one being viewed. It
// returns service.ErrNotFound only when the store has nothing to offer
// besides excludeID.
func (e *Engine) Recommend(ctx context.Context, userID int64, excludeID string) (*storage.Paper, error) {
	recent, err := e.interactions.ListRecentPapers(ctx, userID, "view", historyLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent views: %w", err)
	}

	terms := interestTerms(recent, excludeID)
	if len(terms) == 0 {
		return e.random(ctx, excludeID)
	}

	query := strings.Join(terms, " ")
	results, err := e.searcher.Search(ctx, query, historyLimit)
	if err != nil {
		contextutil.LoggerFromContext(ctx).Warn("interest search failed, falling back to random", "error", err)
		return e.random(ctx, excludeID)
	}
	for _, p := range results {
		if p.ID != excludeID {
			paper := p
			return &paper, nil
		}
	}
	return e.random(ctx, excludeID)
}

func (e *Engine) random(ctx context.Context, excludeID string) (*storage.Paper, error) {
	paper, err := e.papers.Random(ctx, excludeID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.WrapError(service.ErrNotFound, "no papers to recommend")
		}
		return nil, fmt.Errorf("random paper: %w", err)
	}
	return paper, nil
}

// interestTerms distills recent views into at most maxTerms terms: every
// keyword plus the first word of each title, ranked by frequency with ties
// broken by first appearance.
func interestTerms(recent []storage.Paper, excludeID string) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	add := func(term string) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			return
		}
		if _, ok := counts[term]; !ok {
			firstSeen[term] = len(order)
			order = append(order, term)
		}
		counts[term]++
	}

	for _, p := range recent {
		if p.ID == excludeID {
			continue
		}
		for _, kw := range p.Keywords {
			add(kw)
		}
		if fields := strings.Fields(p.Title); len(fields) > 0 {
			add(fields[0])
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})
	if len(order) > maxTerms {
		order = order[:maxTerms]
	}
	return order
}
