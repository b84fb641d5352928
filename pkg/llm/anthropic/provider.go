package anthropic

import (
	"context"
	"fmt"
	"time"

	"ai-transcript-notes-be/pkg/llm"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	DefaultModel     = "claude-3-opus-20240229"
	defaultMaxTokens = 1000

	pingTimeout = 5 * time.Second
)

type AnthropicProvider struct {
	apiKey string
	model  string
	client anthropic.Client
}

var _ llm.LLMProvider = &AnthropicProvider{}

// NewAnthropicProvider builds a Messages API client. The SDK's automatic retries are
// disabled; a failed call is reported once.
func NewAnthropicProvider(apiKey, baseURL, model string) *AnthropicProvider {
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &AnthropicProvider{
		apiKey: apiKey,
		model:  model,
		client: anthropic.NewClient(opts...),
	}
}

func (p *AnthropicProvider) Name() string {
	return llm.ProviderAnthropic
}

func (p *AnthropicProvider) Ping(ctx context.Context) error {
	if p.apiKey == "" {
		return fmt.Errorf("anthropic: %w", llm.ErrMissingAPIKey)
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := p.client.Models.List(ctx, anthropic.ModelListParams{Limit: anthropic.Int(1)}); err != nil {
		return fmt.Errorf("anthropic list models: %w", err)
	}
	return nil
}

func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	opts := llm.Apply(llm.Options{Model: p.model, MaxTokens: defaultMaxTokens, Temperature: 0.7}, options...)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(opts.Model),
		MaxTokens: int64(opts.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(opts.Temperature),
	}
	if opts.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: opts.SystemPrompt}}
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("unexpected response format: no text content block")
}
