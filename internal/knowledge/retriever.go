package knowledge

import (
	"context"
	"fmt"

	"paperchat/internal/contextutil"
	"paperchat/internal/vectorstore"
)

// Embedder produces embedding vectors for a batch of texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Retriever answers semantic queries against the triple collection.
type Retriever struct {
	embedder   Embedder
	vectors    vectorstore.VectorStore
	collection string
}

func NewRetriever(embedder Embedder, vectors vectorstore.VectorStore, collection string) *Retriever {
	return &Retriever{embedder: embedder, vectors: vectors, collection: collection}
}

// Query returns up to limit triples semantically close to the query text.
func (r *Retriever) Query(ctx context.Context, query string, limit int) ([]Triple, error) {
	if limit <= 0 {
		return nil, nil
	}

	vectors, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors for one input", len(vectors))
	}

	results, err := r.vectors.Search(ctx, r.collection, vectors[0], limit, nil)
	if err != nil {
		return nil, fmt.Errorf("triple search: %w", err)
	}

	logger := contextutil.LoggerFromContext(ctx)
	triples := make([]Triple, 0, len(results))
	for _, res := range results {
		triple, ok := tripleFromMeta(res.Meta)
		if !ok {
			logger.Warn("triple point has incomplete payload, skipping", "point_id", res.PointID)
			continue
		}
		triples = append(triples, triple)
	}
	return triples, nil
}

func tripleFromMeta(meta map[string]any) (Triple, bool) {
	t := Triple{
		Head:     metaString(meta, "head"),
		Relation: metaString(meta, "relation"),
		Tail:     metaString(meta, "tail"),
		PaperID:  metaString(meta, "paper_id"),
		Source:   metaString(meta, "source"),
	}
	if t.Head == "" || t.Relation == "" || t.Tail == "" {
		return Triple{}, false
	}
	return t, true
}

func metaString(meta map[string]any, key string) string {
	s, _ := meta[key].(string)
	return s
}
