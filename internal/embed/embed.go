// Package embed turns chunk text into vectors through any OpenAI-compatible
// embeddings endpoint.
package embed

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel matches the model used to build the existing index; queries
// must embed with the same model they were indexed under.
const DefaultModel = "text-embedding-3-small"

// batchSize bounds how many inputs go into one embeddings request.
const batchSize = 64

// Client is the minimal interface core logic needs to embed text. It
// mirrors the go-openai method so any compatible backend can be adapted,
// including the local stub server used in tests.
type Client interface {
	CreateEmbeddings(ctx context.Context, request openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// OpenAIProvider adapts *openai.Client to the Client interface.
type OpenAIProvider struct {
	Inner *openai.Client
}

func (p *OpenAIProvider) CreateEmbeddings(ctx context.Context, request openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error) {
	return p.Inner.CreateEmbeddings(ctx, request)
}

// NewOpenAIProvider builds a provider for the given endpoint. baseURL may
// be empty for the public API.
func NewOpenAIProvider(apiKey, baseURL string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}

// Embedder embeds batches of texts with a fixed model.
type Embedder struct {
	Client Client
	Model  string
}

func (e *Embedder) model() openai.EmbeddingModel {
	if e.Model == "" {
		return openai.EmbeddingModel(DefaultModel)
	}
	return openai.EmbeddingModel(e.Model)
}

// Texts embeds texts in order, batching requests. The returned slice is
// index-aligned with the input.
func (e *Embedder) Texts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		resp, err := e.Client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: texts[start:end],
			Model: e.model(),
		})
		if err != nil {
			return nil, fmt.Errorf("embed batch at %d: %w", start, err)
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("embed batch at %d: got %d vectors for %d inputs", start, len(resp.Data), end-start)
		}
		for _, d := range resp.Data {
			out = append(out, d.Embedding)
		}
	}
	return out, nil
}

// Query embeds a single question.
func (e *Embedder) Query(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.Texts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}
