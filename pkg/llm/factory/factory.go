package factory

import (
	"fmt"

	"ai-transcript-notes-be/pkg/llm"
	"ai-transcript-notes-be/pkg/llm/anthropic"
	"ai-transcript-notes-be/pkg/llm/ollama"
	"ai-transcript-notes-be/pkg/llm/openai"
)

// NewLLMProvider builds the backend named by providerType. baseURL is only meaningful for
// ollama (and for pointing cloud clients at a compatible endpoint); apiKey is ignored by ollama.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case llm.ProviderOllama:
		return ollama.NewOllamaProvider(baseURL, modelName)
	case llm.ProviderOpenAI:
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	case llm.ProviderAnthropic:
		return anthropic.NewAnthropicProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
