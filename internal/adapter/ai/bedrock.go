package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arturoeanton/go-bedrock-rag/internal/port"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// GenerationConfig holds the fixed Titan text-generation parameters sent on
// every invocation. There are no custom stop sequences.
type GenerationConfig struct {
	MaxTokenCount int
	Temperature   float64
	TopP          float64
}

// BedrockProvider implements port.AIProvider against the Amazon Bedrock
// runtime, using Titan models for embeddings and text generation.
type BedrockProvider struct {
	client     *bedrockruntime.Client
	embedModel string
	textModel  string
	gen        GenerationConfig
}

// NewBedrockProvider creates a Bedrock-backed AI provider. The runtime client
// is injected so tests can point it at a local endpoint.
func NewBedrockProvider(client *bedrockruntime.Client, embedModel, textModel string, gen GenerationConfig) *BedrockProvider {
	return &BedrockProvider{
		client:     client,
		embedModel: embedModel,
		textModel:  textModel,
		gen:        gen,
	}
}

// Embed generates a vector embedding for the given text.
func (b *BedrockProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, port.ErrEmptyInput
	}

	payload := map[string]interface{}{
		"inputText": text,
	}

	body, err := b.invoke(ctx, b.embedModel, payload)
	if err != nil {
		return nil, fmt.Errorf("bedrock embed: %w", err)
	}

	var resp struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("bedrock embed decode: %w", err)
	}

	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("bedrock embed: empty embedding")
	}

	return resp.Embedding, nil
}

// Generate produces a single best completion for the given prompt using the
// fixed generation parameters.
func (b *BedrockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"inputText": prompt,
		"textGenerationConfig": map[string]interface{}{
			"maxTokenCount": b.gen.MaxTokenCount,
			"temperature":   b.gen.Temperature,
			"topP":          b.gen.TopP,
			"stopSequences": []string{},
		},
	}

	body, err := b.invoke(ctx, b.textModel, payload)
	if err != nil {
		return "", fmt.Errorf("bedrock generate: %w", err)
	}

	var resp struct {
		Results []struct {
			OutputText string `json:"outputText"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("bedrock generate decode: %w", err)
	}

	if len(resp.Results) == 0 {
		return "", port.ErrNoCompletion
	}

	return resp.Results[0].OutputText, nil
}

// invoke marshals the payload and calls the Bedrock runtime for one model.
func (b *BedrockProvider) invoke(ctx context.Context, modelID string, payload interface{}) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payloadBytes,
	})
	if err != nil {
		return nil, err
	}

	return out.Body, nil
}
