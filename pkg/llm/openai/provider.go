package openai

import (
	"context"
	"fmt"
	"time"

	"ai-transcript-notes-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

const (
	DefaultModel = "gpt-4o"

	pingTimeout = 5 * time.Second
)

type OpenAIProvider struct {
	apiKey string
	model  string
	client *goopenai.Client
}

var _ llm.LLMProvider = &OpenAIProvider{}

// NewOpenAIProvider builds a chat-completions client. An empty baseURL targets api.openai.com;
// any OpenAI compatible endpoint works otherwise.
func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	if model == "" {
		model = DefaultModel
	}

	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIProvider{
		apiKey: apiKey,
		model:  model,
		client: goopenai.NewClientWithConfig(cfg),
	}
}

func (p *OpenAIProvider) Name() string {
	return llm.ProviderOpenAI
}

// Ping lists models, which validates both reachability and the API key.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	if p.apiKey == "" {
		return fmt.Errorf("openai: %w", llm.ErrMissingAPIKey)
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := p.client.ListModels(ctx); err != nil {
		return fmt.Errorf("openai list models: %w", err)
	}
	return nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	opts := llm.Apply(llm.Options{Model: p.model, Temperature: 0.7}, options...)

	messages := make([]goopenai.ChatCompletionMessage, 0, 2)
	if opts.SystemPrompt != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: opts.SystemPrompt,
		})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := goopenai.ChatCompletionRequest{
		Model:       opts.Model,
		Messages:    messages,
		Temperature: float32(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty choices from openai api")
	}

	return resp.Choices[0].Message.Content, nil
}
