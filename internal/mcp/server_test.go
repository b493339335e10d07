package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arturoeanton/go-bedrock-rag/internal/domain"
	"github.com/arturoeanton/go-bedrock-rag/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAI struct {
	embedding []float32
	answer    string
}

func (s *stubAI) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.embedding, nil
}

func (s *stubAI) Generate(ctx context.Context, prompt string) (string, error) {
	return s.answer, nil
}

type stubChunks struct {
	chunks []domain.Chunk
}

func (s *stubChunks) FetchChunks(ctx context.Context) ([]domain.Chunk, error) {
	return s.chunks, nil
}

func newTestServer() *Server {
	ai := &stubAI{embedding: []float32{1, 0}, answer: "From the docs."}
	source := &stubChunks{chunks: []domain.Chunk{
		{Text: "Relevant passage", Embedding: []float32{1, 0}, Source: "guide.pdf", Page: 1},
	}}
	chat := service.NewChatService(ai, source, service.NewRanker(5, 0.05))
	return NewServer(chat, "0")
}

func rpc(t *testing.T, s *Server, payload string) JSONRPCResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(payload))
	w := httptest.NewRecorder()
	s.handleRPC(w, req)

	var resp JSONRPCResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestInitialize(t *testing.T) {
	resp := rpc(t, newTestServer(), `{"jsonrpc": "2.0", "id": 1, "method": "initialize"}`)

	require.Nil(t, resp.Error)
	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2024-11-05", result["protocolVersion"])

	info, ok := result["serverInfo"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "bedrock-rag", info["name"])
}

func TestToolsList(t *testing.T) {
	resp := rpc(t, newTestServer(), `{"jsonrpc": "2.0", "id": 2, "method": "tools/list"}`)

	require.Nil(t, resp.Error)
	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)

	tools, ok := result["tools"].([]interface{})
	require.True(t, ok)
	require.Len(t, tools, 2)

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.(map[string]interface{})["name"].(string))
	}
	assert.ElementsMatch(t, []string{"ask_documents", "search_documents"}, names)
}

func TestCallAskDocuments(t *testing.T) {
	resp := rpc(t, newTestServer(), `{
		"jsonrpc": "2.0", "id": 3, "method": "tools/call",
		"params": {"name": "ask_documents", "arguments": {"question": "what is this?"}}
	}`)

	require.Nil(t, resp.Error)
	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)

	content, ok := result["content"].([]interface{})
	require.True(t, ok)
	require.Len(t, content, 1)
	assert.Equal(t, "From the docs.", content[0].(map[string]interface{})["text"])

	assert.Equal(t, []interface{}{"guide.pdf"}, result["sources"])
	assert.Equal(t, "found", result["retrieval"])
}

func TestCallSearchDocuments(t *testing.T) {
	resp := rpc(t, newTestServer(), `{
		"jsonrpc": "2.0", "id": 4, "method": "tools/call",
		"params": {"name": "search_documents", "arguments": {"question": "what is this?"}}
	}`)

	require.Nil(t, resp.Error)
	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "found", result["outcome"])

	chunks, ok := result["chunks"].([]interface{})
	require.True(t, ok)
	require.Len(t, chunks, 1)

	match := chunks[0].(map[string]interface{})
	assert.Equal(t, "Relevant passage", match["text"])
	assert.Equal(t, "guide.pdf", match["source"])
	assert.Equal(t, float64(1), match["page"])
	assert.InDelta(t, 1.0, match["similarity"].(float64), 1e-6)
	assert.NotContains(t, match, "embedding")
}

func TestCallUnknownTool(t *testing.T) {
	resp := rpc(t, newTestServer(), `{
		"jsonrpc": "2.0", "id": 5, "method": "tools/call",
		"params": {"name": "bogus", "arguments": {}}
	}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, -32603, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "unknown tool")
}

func TestUnknownMethod(t *testing.T) {
	resp := rpc(t, newTestServer(), `{"jsonrpc": "2.0", "id": 6, "method": "nope"}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, -32601, resp.Error.Code)
}

func TestParseError(t *testing.T) {
	resp := rpc(t, newTestServer(), `{not json`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, -32700, resp.Error.Code)
}

func TestRPCRejectsGet(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer().handleRPC(w, httptest.NewRequest(http.MethodGet, "/mcp", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
