package service

import (
	"log/slog"
	"math"
	"sort"

	"github.com/arturoeanton/go-bedrock-rag/internal/domain"
)

// Ranker scores stored chunks against a query embedding with a full linear
// scan. At the current store size a scan beats maintaining an index; revisit
// if the documents table grows past a few hundred thousand rows.
type Ranker struct {
	TopK      int
	Threshold float64
}

// NewRanker creates a ranker with the given cutoffs.
func NewRanker(topK int, threshold float64) Ranker {
	return Ranker{TopK: topK, Threshold: threshold}
}

// Rank computes cosine similarity between the query and every chunk, sorts
// descending (ties keep input order), drops entries below the threshold and
// returns at most TopK. A stored embedding whose dimension does not match the
// query is skipped and logged, never fatal. An empty store ranks to empty.
func (r Ranker) Rank(query []float32, chunks []domain.Chunk) []domain.ScoredChunk {
	scored := make([]domain.ScoredChunk, 0, len(chunks))
	for i, c := range chunks {
		if len(c.Embedding) != len(query) {
			slog.Warn("skipping chunk with mismatched embedding dimension",
				"row", i, "got", len(c.Embedding), "want", len(query))
			continue
		}
		scored = append(scored, domain.ScoredChunk{
			Chunk:      c,
			Similarity: cosineSimilarity(query, c.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	ranked := make([]domain.ScoredChunk, 0, len(scored))
	for _, sc := range scored {
		if sc.Similarity >= r.Threshold {
			ranked = append(ranked, sc)
		}
	}

	if len(ranked) > r.TopK {
		ranked = ranked[:r.TopK]
	}
	return ranked
}

// cosineSimilarity computes the cosine of the angle between two equal-length
// vectors, in [-1, 1]. Zero-norm vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
