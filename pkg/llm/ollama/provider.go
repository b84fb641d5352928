package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ai-transcript-notes-be/pkg/llm"

	"github.com/ollama/ollama/api"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "gemma3:12b"

	pingTimeout = 5 * time.Second
)

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	client    *api.Client
}

// Ensure OllamaProvider implements LLMProvider
var _ llm.LLMProvider = &OllamaProvider{}

// NewOllamaProvider builds a client for a local Ollama server.
// Generation requests carry no client-side timeout; only Ping is bounded.
func NewOllamaProvider(baseURL, modelName string) (*OllamaProvider, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse ollama base url: %w", err)
	}

	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		client:    api.NewClient(u, &http.Client{}),
	}, nil
}

func (o *OllamaProvider) Name() string {
	return llm.ProviderOllama
}

// Ping lists local models (GET /api/tags) as a health check.
func (o *OllamaProvider) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := o.client.List(ctx); err != nil {
		return fmt.Errorf("ollama list models: %w", err)
	}
	return nil
}

func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Temperature: 0.7}, opts...)

	model := o.ModelName
	if options.Model != "" {
		model = options.Model
	}

	stream := false
	req := &api.GenerateRequest{
		Model:  model,
		Prompt: prompt,
		System: options.SystemPrompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature": options.Temperature,
		},
	}
	if options.MaxTokens > 0 {
		req.Options["num_predict"] = options.MaxTokens
	}

	var sb strings.Builder
	err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generation failed: %w", err)
	}

	return sb.String(), nil
}
