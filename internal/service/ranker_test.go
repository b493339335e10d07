package service

import (
	"testing"

	"github.com/arturoeanton/go-bedrock-rag/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(text, source string, embedding ...float32) domain.Chunk {
	return domain.Chunk{Text: text, Source: source, Embedding: embedding}
}

func TestRankOrdersBySimilarity(t *testing.T) {
	r := NewRanker(5, 0.05)

	// 2D toy embeddings so the geometry is easy to reason about
	query := []float32{1, 0}
	chunks := []domain.Chunk{
		chunk("far", "b.pdf", 0.1, 0.9),
		chunk("exact", "a.pdf", 1, 0),
		chunk("near", "a.pdf", 0.9, 0.1),
	}

	ranked := r.Rank(query, chunks)

	require.Len(t, ranked, 3)
	assert.Equal(t, "exact", ranked[0].Text)
	assert.Equal(t, "near", ranked[1].Text)
	assert.Equal(t, "far", ranked[2].Text)
	assert.InDelta(t, 1.0, ranked[0].Similarity, 1e-6)
}

func TestRankTruncatesToTopK(t *testing.T) {
	r := NewRanker(2, 0)

	query := []float32{1, 0}
	chunks := []domain.Chunk{
		chunk("best", "s", 1, 0),
		chunk("second", "s", 0.9, 0.1),
		chunk("third", "s", 0.8, 0.2),
	}

	ranked := r.Rank(query, chunks)

	require.Len(t, ranked, 2)
	assert.Equal(t, "best", ranked[0].Text)
	assert.Equal(t, "second", ranked[1].Text)
}

func TestRankThresholdIsInclusive(t *testing.T) {
	r := NewRanker(5, 1.0)

	// "exact" points the same way as the query, so its similarity is
	// exactly 1.0 and must survive a threshold of 1.0.
	query := []float32{1, 0}
	ranked := r.Rank(query, []domain.Chunk{
		chunk("exact", "s", 2, 0),
		chunk("off", "s", 1, 1),
	})

	require.Len(t, ranked, 1)
	assert.Equal(t, "exact", ranked[0].Text)
}

func TestRankFiltersBelowThreshold(t *testing.T) {
	r := NewRanker(5, 0.05)

	query := []float32{1, 0}
	ranked := r.Rank(query, []domain.Chunk{
		chunk("orthogonal", "s", 0, 1),
		chunk("opposite", "s", -1, 0),
	})

	assert.Empty(t, ranked)
}

func TestRankEmptyStore(t *testing.T) {
	r := NewRanker(5, 0.05)

	ranked := r.Rank([]float32{1, 0}, nil)

	assert.Empty(t, ranked)
}

func TestRankSkipsMismatchedDimensions(t *testing.T) {
	r := NewRanker(5, 0)

	// 3D embedding against a 2D query must be skipped, not scored.
	query := []float32{1, 0}
	ranked := r.Rank(query, []domain.Chunk{
		chunk("bad", "s", 1, 0, 0),
		chunk("good", "s", 1, 0),
	})

	require.Len(t, ranked, 1)
	assert.Equal(t, "good", ranked[0].Text)
}

func TestRankStableOnTies(t *testing.T) {
	r := NewRanker(5, 0)

	// Both chunks point the same way as the query, so their similarities
	// tie at 1.0 and input order must hold.
	query := []float32{1, 0}
	ranked := r.Rank(query, []domain.Chunk{
		chunk("first", "s", 2, 0),
		chunk("second", "s", 3, 0),
	})

	require.Len(t, ranked, 2)
	assert.Equal(t, "first", ranked[0].Text)
	assert.Equal(t, "second", ranked[1].Text)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"scaled", []float32{1, 0}, []float32{3, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero norm", []float32{0, 0}, []float32{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-6)
		})
	}
}
