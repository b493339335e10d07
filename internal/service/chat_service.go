package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arturoeanton/go-bedrock-rag/internal/domain"
	"github.com/arturoeanton/go-bedrock-rag/internal/port"
)

// FallbackAnswer is returned when retrieval produced nothing to ground an
// answer on. This is a designed response, not an error.
const FallbackAnswer = "I couldn't find any relevant information to answer your question. Could you please rephrase or ask something else?"

// answerPromptTemplate is the fixed instruction wrapping every generation
// call; the placeholders are the assembled context and the question.
const answerPromptTemplate = `You are a helpful AI assistant. Based on the provided context, answer the user's question comprehensively and accurately.

Context:
%s

Question: %s

Please provide a detailed and informative answer based on the context above. If the context doesn't contain enough information to fully answer the question, please mention what information is available and what might be missing.

Answer:`

// ChatService answers questions over the stored documents: embed the
// question, rank every stored chunk against it, and generate an answer
// grounded in the retrieved context.
type ChatService struct {
	ai     port.AIProvider
	source port.ChunkSource
	ranker Ranker
}

// NewChatService creates the RAG orchestration service.
func NewChatService(ai port.AIProvider, source port.ChunkSource, ranker Ranker) *ChatService {
	return &ChatService{ai: ai, source: source, ranker: ranker}
}

// Retrieve embeds the question and ranks the full document store against it.
// Store connectivity problems degrade to a store_unavailable outcome rather
// than an error; an embedding failure is returned to the caller.
func (s *ChatService) Retrieve(ctx context.Context, question string) (*domain.RetrievalResult, error) {
	queryVector, err := s.ai.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	chunks, err := s.source.FetchChunks(ctx)
	if err != nil {
		slog.Error("document store unavailable", "error", err)
		return &domain.RetrievalResult{Outcome: domain.RetrievalStoreUnavailable}, nil
	}

	ranked := s.ranker.Rank(queryVector, chunks)
	slog.Info("retrieval complete", "scanned", len(chunks), "matched", len(ranked))

	if len(ranked) == 0 {
		return &domain.RetrievalResult{Outcome: domain.RetrievalEmpty}, nil
	}

	return &domain.RetrievalResult{Outcome: domain.RetrievalFound, Chunks: ranked}, nil
}

// Answer runs the full pipeline for one question. When retrieval comes back
// empty (or the store is down) the fixed fallback text is returned with no
// sources; the Retrieval field tells the two cases apart.
func (s *ChatService) Answer(ctx context.Context, question string) (*domain.Answer, error) {
	slog.Info("chat query", "question", question)

	result, err := s.Retrieve(ctx, question)
	if err != nil {
		return nil, err
	}

	if result.Outcome != domain.RetrievalFound {
		return &domain.Answer{
			Text:      FallbackAnswer,
			Sources:   []string{},
			Retrieval: result.Outcome,
		}, nil
	}

	contextText := assembleContext(result.Chunks)
	prompt := fmt.Sprintf(answerPromptTemplate, contextText, question)

	answer, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{
		Text:      answer,
		Sources:   uniqueSources(result.Chunks),
		Retrieval: domain.RetrievalFound,
	}, nil
}

// assembleContext joins the retrieved chunk texts in ranked order.
func assembleContext(chunks []domain.ScoredChunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Text
	}
	return strings.Join(parts, "\n")
}

// uniqueSources collects the distinct non-empty source labels of the
// retrieved chunks. Order is not specified.
func uniqueSources(chunks []domain.ScoredChunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	sources := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c.Source == "" {
			continue
		}
		if _, ok := seen[c.Source]; ok {
			continue
		}
		seen[c.Source] = struct{}{}
		sources = append(sources, c.Source)
	}
	return sources
}
