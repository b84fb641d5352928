package llm

import (
	"context"
	"errors"
)

// Supported provider identifiers
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// SupportedProviders lists every backend the factory can build, in display order.
var SupportedProviders = []string{ProviderOllama, ProviderOpenAI, ProviderAnthropic}

// ErrMissingAPIKey is returned by cloud providers that were built without credentials.
var ErrMissingAPIKey = errors.New("api key is not configured")

// IsSupported reports whether name is one of SupportedProviders.
func IsSupported(name string) bool {
	for _, p := range SupportedProviders {
		if p == name {
			return true
		}
	}
	return false
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature  float64
	MaxTokens    int
	Model        string // Override default model
	SystemPrompt string
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithSystemPrompt(prompt string) Option {
	return func(o *Options) {
		o.SystemPrompt = prompt
	}
}

// Apply folds opts over the defaults and returns the result.
func Apply(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Name returns the provider identifier (one of SupportedProviders)
	Name() string

	// Ping is a cheap reachability probe. Implementations bound it with their own short timeout.
	Ping(ctx context.Context) error

	// Generate sends a single prompt to the model and returns the raw text answer
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
