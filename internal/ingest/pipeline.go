package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"paperchat/internal/contextutil"
	"paperchat/internal/knowledge"
	"paperchat/internal/storage"
	"paperchat/internal/vectorstore"
)

const batchSize = 32

// Embedder produces embedding vectors for a batch of texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// PaperStore is the subset of the paper repository the pipeline needs.
type PaperStore interface {
	ListUnembedded(ctx context.Context, limit int) ([]storage.Paper, error)
	ListUnextracted(ctx context.Context, limit int) ([]storage.Paper, error)
	MarkEmbedded(ctx context.Context, id string) error
	MarkKGProcessed(ctx context.Context, id string) error
}

// Pipeline pushes stored papers into the vector collections: one pass embeds
// paper text, another extracts and embeds knowledge-graph triples. Both
// passes are resumable; progress is tracked with per-paper flags.
type Pipeline struct {
	papers          PaperStore
	embedder        Embedder
	vectors         vectorstore.VectorStore
	paperCollection string
	kgCollection    string
}

func NewPipeline(papers PaperStore, embedder Embedder, vectors vectorstore.VectorStore, paperCollection, kgCollection string) *Pipeline {
	return &Pipeline{
		papers:          papers,
		embedder:        embedder,
		vectors:         vectors,
		paperCollection: paperCollection,
		kgCollection:    kgCollection,
	}
}

// Run drains both passes. Per-paper failures are logged and skipped; the
// paper stays flagged for the next run.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.EmbedPending(ctx); err != nil {
		return err
	}
	return p.ExtractPending(ctx)
}

// EmbedPending embeds every paper not yet present in the paper collection.
func (p *Pipeline) EmbedPending(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		papers, err := p.papers.ListUnembedded(ctx, batchSize)
		if err != nil {
			return fmt.Errorf("list unembedded papers: %w", err)
		}
		if len(papers) == 0 {
			return nil
		}
		progressed := 0
		for _, paper := range papers {
			if err := p.embedPaper(ctx, paper); err != nil {
				logger.Error("embedding paper failed, skipping", "paper_id", paper.ID, "error", err)
				continue
			}
			if err := p.papers.MarkEmbedded(ctx, paper.ID); err != nil {
				return fmt.Errorf("mark paper %s embedded: %w", paper.ID, err)
			}
			progressed++
		}
		// A batch where nothing could be embedded would repeat forever.
		if progressed == 0 {
			return nil
		}
	}
}

// ExtractPending extracts triples from every paper not yet processed and
// embeds them into the triple collection.
func (p *Pipeline) ExtractPending(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		papers, err := p.papers.ListUnextracted(ctx, batchSize)
		if err != nil {
			return fmt.Errorf("list unextracted papers: %w", err)
		}
		if len(papers) == 0 {
			return nil
		}
		progressed := 0
		for _, paper := range papers {
			if err := p.extractPaper(ctx, paper); err != nil {
				logger.Error("triple extraction failed, skipping", "paper_id", paper.ID, "error", err)
				continue
			}
			if err := p.papers.MarkKGProcessed(ctx, paper.ID); err != nil {
				return fmt.Errorf("mark paper %s processed: %w", paper.ID, err)
			}
			progressed++
		}
		if progressed == 0 {
			return nil
		}
	}
}

func (p *Pipeline) embedPaper(ctx context.Context, paper storage.Paper) error {
	vectors, err := p.embedder.EmbedTexts(ctx, []string{CombinedText(paper)})
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	point := vectorstore.Point{
		ID:  pointID(paper.ID),
		Vec: vectors[0],
		Meta: map[string]any{
			"paper_id": paper.ID,
			"title":    paper.Title,
		},
	}
	if err := p.vectors.Upsert(ctx, p.paperCollection, []vectorstore.Point{point}); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

func (p *Pipeline) extractPaper(ctx context.Context, paper storage.Paper) error {
	triples := knowledge.ExtractTriples(paper.ID, paper.Title, paper.Abstract, paper.Keywords)

	// Re-extraction can yield fewer triples than a previous run, so clear
	// the paper's old points before upserting the new set.
	if err := p.vectors.Delete(ctx, p.kgCollection, map[string]any{"paper_id": paper.ID}); err != nil {
		return fmt.Errorf("delete stale triples: %w", err)
	}
	if len(triples) == 0 {
		return nil
	}

	texts := make([]string, len(triples))
	for i, t := range triples {
		texts[i] = t.Text()
	}
	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed triples: %w", err)
	}

	points := make([]vectorstore.Point, len(triples))
	for i, t := range triples {
		points[i] = vectorstore.Point{
			ID:  pointID(fmt.Sprintf("%s_%d", paper.ID, i)),
			Vec: vectors[i],
			Meta: map[string]any{
				"head":     t.Head,
				"relation": t.Relation,
				"tail":     t.Tail,
				"paper_id": t.PaperID,
				"source":   t.Source,
			},
		}
	}
	if err := p.vectors.Upsert(ctx, p.kgCollection, points); err != nil {
		return fmt.Errorf("upsert triples: %w", err)
	}
	return nil
}

// CombinedText builds the flat text that represents a paper in the
// embedding space.
func CombinedText(paper storage.Paper) string {
	var b strings.Builder
	b.WriteString("Title: ")
	b.WriteString(paper.Title)
	b.WriteString("\nAbstract: ")
	b.WriteString(paper.Abstract)
	if len(paper.Keywords) > 0 {
		b.WriteString("\nKeywords: ")
		b.WriteString(strings.Join(paper.Keywords, ", "))
	}
	return b.String()
}

// pointID derives a stable UUID for a natural id so re-ingestion updates
// points in place.
func pointID(natural string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(natural)).String()
}
