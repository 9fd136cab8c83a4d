package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"paperchat/internal/storage"
	"paperchat/internal/vectorstore"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakePaperStore struct {
	unembedded  []storage.Paper
	unextracted []storage.Paper
	embedded    map[string]bool
	processed   map[string]bool
}

func newFakePaperStore(papers ...storage.Paper) *fakePaperStore {
	return &fakePaperStore{
		unembedded:  papers,
		unextracted: papers,
		embedded:    make(map[string]bool),
		processed:   make(map[string]bool),
	}
}

func (f *fakePaperStore) ListUnembedded(_ context.Context, limit int) ([]storage.Paper, error) {
	return pending(f.unembedded, f.embedded, limit), nil
}

func (f *fakePaperStore) ListUnextracted(_ context.Context, limit int) ([]storage.Paper, error) {
	return pending(f.unextracted, f.processed, limit), nil
}

func (f *fakePaperStore) MarkEmbedded(_ context.Context, id string) error {
	f.embedded[id] = true
	return nil
}

func (f *fakePaperStore) MarkKGProcessed(_ context.Context, id string) error {
	f.processed[id] = true
	return nil
}

func pending(papers []storage.Paper, done map[string]bool, limit int) []storage.Paper {
	var out []storage.Paper
	for _, p := range papers {
		if !done[p.ID] && len(out) < limit {
			out = append(out, p)
		}
	}
	return out
}

type fakeEmbedder struct {
	failFor map[string]bool
	calls   int
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	for _, text := range texts {
		if f.failFor[text] {
			return nil, errors.New("embedding failed")
		}
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

type fakeVectorStore struct {
	upserts map[string][]vectorstore.Point
	deletes map[string][]map[string]any
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{
		upserts: make(map[string][]vectorstore.Point),
		deletes: make(map[string][]map[string]any),
	}
}

func (f *fakeVectorStore) Upsert(_ context.Context, collection string, points []vectorstore.Point) error {
	f.upserts[collection] = append(f.upserts[collection], points...)
	return nil
}

func (f *fakeVectorStore) Search(context.Context, string, []float32, int, map[string]any) ([]vectorstore.SearchResult, error) {
	return nil, nil
}

func (f *fakeVectorStore) Delete(_ context.Context, collection string, filters map[string]any) error {
	f.deletes[collection] = append(f.deletes[collection], filters)
	return nil
}

func TestPipeline_Run(t *testing.T) {
	store := newFakePaperStore(
		storage.Paper{ID: "p1", Title: "First Paper", Abstract: "BERT is a language model.", Keywords: []string{"nlp"}},
		storage.Paper{ID: "p2", Title: "Second Paper", Abstract: "Plain abstract"},
	)
	vectors := newFakeVectorStore()
	pipeline := NewPipeline(store, &fakeEmbedder{}, vectors, "papers", "kg_triples")

	if err := pipeline.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !store.embedded["p1"] || !store.embedded["p2"] {
		t.Error("all papers should be marked embedded")
	}
	if !store.processed["p1"] || !store.processed["p2"] {
		t.Error("all papers should be marked processed")
	}
	if got := len(vectors.upserts["papers"]); got != 2 {
		t.Errorf("paper collection has %d points, want 2", got)
	}
	if got := len(vectors.upserts["kg_triples"]); got == 0 {
		t.Error("triple collection should have points for p1")
	}
	for _, point := range vectors.upserts["papers"] {
		if point.Meta["paper_id"] == "" {
			t.Error("paper points must carry the paper id in their payload")
		}
	}
}

func TestPipeline_ExtractPending_ClearsStaleTriples(t *testing.T) {
	papers := []storage.Paper{
		{ID: "p1", Title: "First Paper", Abstract: "BERT is a language model.", Embedded: true},
		{ID: "p2", Title: "Second Paper", Abstract: "Plain abstract", Embedded: true},
	}
	store := newFakePaperStore(papers...)
	for _, p := range papers {
		store.embedded[p.ID] = true
	}
	vectors := newFakeVectorStore()
	pipeline := NewPipeline(store, &fakeEmbedder{}, vectors, "papers", "kg_triples")

	if err := pipeline.ExtractPending(context.Background()); err != nil {
		t.Fatalf("ExtractPending() error = %v", err)
	}

	deletes := vectors.deletes["kg_triples"]
	if len(deletes) != 2 {
		t.Fatalf("got %d triple deletes, want one per paper", len(deletes))
	}
	got := map[string]bool{}
	for _, filters := range deletes {
		id, _ := filters["paper_id"].(string)
		got[id] = true
	}
	if !got["p1"] || !got["p2"] {
		t.Errorf("old triple points must be cleared per paper id, got %v", deletes)
	}
	if len(vectors.deletes["papers"]) != 0 {
		t.Error("the paper collection must not be touched by extraction")
	}
}

func TestPipeline_EmbedPending_SkipsFailures(t *testing.T) {
	p1 := storage.Paper{ID: "p1", Title: "Bad", Abstract: "fails"}
	p2 := storage.Paper{ID: "p2", Title: "Good", Abstract: "works"}
	store := newFakePaperStore(p1, p2)
	embedder := &fakeEmbedder{failFor: map[string]bool{CombinedText(p1): true}}
	pipeline := NewPipeline(store, embedder, newFakeVectorStore(), "papers", "kg_triples")

	if err := pipeline.EmbedPending(context.Background()); err != nil {
		t.Fatalf("EmbedPending() error = %v", err)
	}
	if store.embedded["p1"] {
		t.Error("failed paper must stay pending")
	}
	if !store.embedded["p2"] {
		t.Error("healthy paper should be embedded despite a failing sibling")
	}
}

func TestPipeline_EmbedPending_ContextCancelled(t *testing.T) {
	store := newFakePaperStore(storage.Paper{ID: "p1", Title: "T", Abstract: "A"})
	pipeline := NewPipeline(store, &fakeEmbedder{}, newFakeVectorStore(), "papers", "kg_triples")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pipeline.EmbedPending(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("EmbedPending() error = %v, want context.Canceled", err)
	}
}

func TestCombinedText(t *testing.T) {
	paper := storage.Paper{Title: "T", Abstract: "A", Keywords: []string{"k1", "k2"}}
	want := "Title: T\nAbstract: A\nKeywords: k1, k2"
	if got := CombinedText(paper); got != want {
		t.Errorf("CombinedText() = %q, want %q", got, want)
	}

	bare := storage.Paper{Title: "T", Abstract: "A"}
	if got := CombinedText(bare); got != "Title: T\nAbstract: A" {
		t.Errorf("CombinedText() without keywords = %q", got)
	}
}
