package port

import (
	"context"

	"github.com/arturoeanton/go-bedrock-rag/internal/domain"
)

// ChunkSource reads the full set of stored chunks for one retrieval pass.
// Every call performs a fresh scan; there is no caching between requests.
type ChunkSource interface {
	FetchChunks(ctx context.Context) ([]domain.Chunk, error)
}

// ObjectStore lists the source documents held in the ingestion bucket.
type ObjectStore interface {
	ListDocuments(ctx context.Context) ([]string, error)
}
