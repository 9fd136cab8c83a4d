package search

import (
	"context"
	"errors"
	"fmt"

	"paperchat/internal/contextutil"
	"paperchat/internal/storage"
	"paperchat/internal/vectorstore"
)

// Embedder produces embedding vectors for a batch of texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// PaperStore is the subset of the paper repository the engine needs.
type PaperStore interface {
	GetByID(ctx context.Context, id string) (*storage.Paper, error)
	SearchKeyword(ctx context.Context, query storage.KeywordQuery, limit int) ([]storage.Paper, error)
}

// Engine runs hybrid paper search: semantic retrieval over the paper
// collection first, keyword search against the relational store when the
// semantic path fails or comes back empty.
type Engine struct {
	embedder   Embedder
	vectors    vectorstore.VectorStore
	papers     PaperStore
	collection string
}

func NewEngine(embedder Embedder, vectors vectorstore.VectorStore, papers PaperStore, collection string) *Engine {
	return &Engine{
		embedder:   embedder,
		vectors:    vectors,
		papers:     papers,
		collection: collection,
	}
}

// Search returns up to limit papers relevant to query. A blank query or a
// non-positive limit yields an empty result.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]storage.Paper, error) {
	if limit <= 0 {
		return nil, nil
	}
	kq := BuildKeywordQuery(query)
	if kq.Empty() {
		return nil, nil
	}

	logger := contextutil.LoggerFromContext(ctx)

	papers, err := e.vectorSearch(ctx, query, limit)
	if err != nil {
		logger.Warn("vector search failed, falling back to keyword search", "error", err)
	} else if len(papers) > 0 {
		return papers, nil
	}

	return e.KeywordSearch(ctx, query, limit)
}

// KeywordSearch runs only the keyword path, bypassing semantic retrieval.
func (e *Engine) KeywordSearch(ctx context.Context, query string, limit int) ([]storage.Paper, error) {
	if limit <= 0 {
		return nil, nil
	}
	kq := BuildKeywordQuery(query)
	if kq.Empty() {
		return nil, nil
	}
	papers, err := e.papers.SearchKeyword(ctx, kq, limit)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	return papers, nil
}

// vectorSearch embeds the query, retrieves extra neighbors to absorb points
// that no longer resolve to a stored paper, and keeps the first limit hits.
func (e *Engine) vectorSearch(ctx context.Context, query string, limit int) ([]storage.Paper, error) {
	vectors, err := e.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors for one input", len(vectors))
	}

	results, err := e.vectors.Search(ctx, e.collection, vectors[0], limit*2, nil)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	logger := contextutil.LoggerFromContext(ctx)
	papers := make([]storage.Paper, 0, limit)
	for _, res := range results {
		if len(papers) >= limit {
			break
		}
		id := paperID(res)
		paper, err := e.papers.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				logger.Warn("vector hit has no stored paper, skipping", "paper_id", id)
				continue
			}
			return nil, fmt.Errorf("resolve paper %s: %w", id, err)
		}
		papers = append(papers, *paper)
	}
	return papers, nil
}

// paperID resolves the stored paper id for a search hit, preferring the
// payload over the point id.
func paperID(res vectorstore.SearchResult) string {
	if id, ok := res.Meta["paper_id"].(string); ok && id != "" {
		return id
	}
	return res.PointID
}
