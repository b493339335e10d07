package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/arturoeanton/go-bedrock-rag/internal/domain"
)

// DocumentStore reads stored document chunks from Postgres. The handle lives
// for the process, but idle connections are never kept: every fetch acquires
// and releases its own physical connection.
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore opens a lazy database handle for the given DSN. The store
// is not pinged here: an unreachable database degrades per request to an
// empty retrieval instead of failing startup.
func NewDocumentStore(dsn string) (*DocumentStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection per retrieval call, nothing pooled between requests.
	db.SetMaxIdleConns(0)

	return &DocumentStore{db: db}, nil
}

// Close closes the database handle.
func (s *DocumentStore) Close() error {
	return s.db.Close()
}

// FetchChunks scans the whole documents table and returns every chunk whose
// embedding decodes. A row with a malformed embedding is skipped and logged,
// never fatal to the query.
func (s *DocumentStore) FetchChunks(ctx context.Context) ([]domain.Chunk, error) {
	query := `SELECT chunk, embedding, source, page FROM documents`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	row := 0
	for rows.Next() {
		var (
			text      string
			rawVector []byte
			source    sql.NullString
			page      sql.NullInt64
		)
		if err := rows.Scan(&text, &rawVector, &source, &page); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}

		embedding, err := decodeEmbedding(rawVector)
		if err != nil {
			slog.Warn("skipping document row with malformed embedding", "row", row, "error", err)
			row++
			continue
		}

		chunks = append(chunks, domain.Chunk{
			Text:      text,
			Embedding: embedding,
			Source:    source.String,
			Page:      int(page.Int64),
		})
		row++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document rows: %w", err)
	}

	return chunks, nil
}

// decodeEmbedding parses an embedding column value, a JSON array of numbers
// serialized at ingestion time, into a float vector.
func decodeEmbedding(raw []byte) ([]float32, error) {
	var v []float32
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode embedding: %w", err)
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("decode embedding: empty vector")
	}
	return v, nil
}
