package domain

// Chunk is one stored document fragment with its precomputed embedding.
// Rows are written by the ingestion pipeline and are read-only here.
type Chunk struct {
	Text      string    `json:"text"      db:"chunk"`
	Embedding []float32 `json:"-"         db:"embedding"`
	Source    string    `json:"source"    db:"source"`
	Page      int       `json:"page"      db:"page"`
}

// ScoredChunk is a chunk scored against one query embedding.
type ScoredChunk struct {
	Chunk
	Similarity float64 `json:"similarity"`
}

// RetrievalOutcome discriminates why a retrieval returned what it did,
// so callers can tell "no matches" apart from "store down".
type RetrievalOutcome string

const (
	RetrievalFound            RetrievalOutcome = "found"
	RetrievalEmpty            RetrievalOutcome = "empty"
	RetrievalStoreUnavailable RetrievalOutcome = "store_unavailable"
)

// RetrievalResult carries the ranked chunks for a query. Chunks is empty
// unless Outcome is RetrievalFound.
type RetrievalResult struct {
	Outcome RetrievalOutcome `json:"outcome"`
	Chunks  []ScoredChunk    `json:"chunks,omitempty"`
}

// Answer is the generated reply for one question, with the deduplicated
// source labels of the chunks that backed it.
type Answer struct {
	Text      string           `json:"text"`
	Sources   []string         `json:"sources"`
	Retrieval RetrievalOutcome `json:"retrieval"`
}
