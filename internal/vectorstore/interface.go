package vectorstore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search with optional exact-match filters.
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error)

	// Delete removes every point whose payload matches all given filters.
	Delete(ctx context.Context, collection string, filters map[string]any) error
}
