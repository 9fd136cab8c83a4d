package match

import (
	"context"
	"math"

	"paperchat/internal/contextutil"
	"paperchat/internal/knowledge"
	"paperchat/internal/storage"
)

// PaperMatch links one answer sentence to the paper that best supports it.
type PaperMatch struct {
	PaperID  string  `json:"paper_id"`
	Sentence string  `json:"sentence"`
	Score    float64 `json:"score"`
}

// TripleMatch links one answer sentence to its best-supporting triple.
type TripleMatch struct {
	Triple   knowledge.Triple `json:"triple"`
	Sentence string           `json:"sentence"`
	Score    float64          `json:"score"`
}

// Embedder produces embedding vectors for a batch of texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Matcher attributes answer sentences to retrieved papers and triples by
// cosine similarity over a shared embedding space.
type Matcher struct {
	embedder        Embedder
	paperThreshold  float64
	tripleThreshold float64
}

func NewMatcher(embedder Embedder, paperThreshold, tripleThreshold float64) *Matcher {
	return &Matcher{
		embedder:        embedder,
		paperThreshold:  paperThreshold,
		tripleThreshold: tripleThreshold,
	}
}

// MatchPapers maps each answer sentence to at most one paper whose combined
// title and abstract clears the paper threshold. Matching is best effort: an
// embedding failure is logged and yields no matches, never an error.
func (m *Matcher) MatchPapers(ctx context.Context, answer string, papers []storage.Paper) []PaperMatch {
	if len(papers) == 0 {
		return nil
	}
	candidates := make([]string, len(papers))
	for i, p := range papers {
		candidates[i] = p.Title + " " + p.Abstract
	}

	pairs := m.matchSentences(ctx, answer, candidates, m.paperThreshold)
	matches := make([]PaperMatch, 0, len(pairs))
	for _, pr := range pairs {
		matches = append(matches, PaperMatch{
			PaperID:  papers[pr.candidate].ID,
			Sentence: pr.sentence,
			Score:    pr.score,
		})
	}
	return matches
}

// MatchTriples maps each answer sentence to at most one triple clearing the
// triple threshold. Best effort, like MatchPapers.
func (m *Matcher) MatchTriples(ctx context.Context, answer string, triples []knowledge.Triple) []TripleMatch {
	if len(triples) == 0 {
		return nil
	}
	candidates := make([]string, len(triples))
	for i, t := range triples {
		candidates[i] = t.Text()
	}

	pairs := m.matchSentences(ctx, answer, candidates, m.tripleThreshold)
	matches := make([]TripleMatch, 0, len(pairs))
	for _, pr := range pairs {
		matches = append(matches, TripleMatch{
			Triple:   triples[pr.candidate],
			Sentence: pr.sentence,
			Score:    pr.score,
		})
	}
	return matches
}

type pairing struct {
	sentence  string
	candidate int
	score     float64
}

// matchSentences embeds all sentences and candidates in one batch and keeps,
// per sentence, the best candidate whose similarity is strictly above the
// threshold. Sentence order is preserved.
func (m *Matcher) matchSentences(ctx context.Context, answer string, candidates []string, threshold float64) []pairing {
	sentences := SplitSentences(answer)
	if len(sentences) == 0 {
		return nil
	}

	texts := make([]string, 0, len(sentences)+len(candidates))
	texts = append(texts, sentences...)
	texts = append(texts, candidates...)

	vectors, err := m.embedder.EmbedTexts(ctx, texts)
	if err != nil || len(vectors) != len(texts) {
		contextutil.LoggerFromContext(ctx).Warn("answer matching skipped, embedding failed", "error", err)
		return nil
	}

	sentenceVecs := vectors[:len(sentences)]
	candidateVecs := vectors[len(sentences):]

	var pairs []pairing
	for i, sv := range sentenceVecs {
		best := -1
		bestScore := threshold
		for j, cv := range candidateVecs {
			if score := cosine(sv, cv); score > bestScore {
				best = j
				bestScore = score
			}
		}
		if best >= 0 {
			pairs = append(pairs, pairing{sentence: sentences[i], candidate: best, score: bestScore})
		}
	}
	return pairs
}

// cosine computes cosine similarity, returning 0 for zero-norm vectors.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
