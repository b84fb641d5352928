package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"ai-transcript-notes-be/pkg/llm"
	"ai-transcript-notes-be/pkg/llm/anthropic"
	"ai-transcript-notes-be/pkg/llm/ollama"
	"ai-transcript-notes-be/pkg/llm/openai"

	"dario.cat/mergo"
)

var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

type OllamaSettings struct {
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
}

type CloudSettings struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

// LLMSettings is the provider selection plus per-provider connection settings.
type LLMSettings struct {
	Provider  string         `json:"provider"`
	Ollama    OllamaSettings `json:"ollama"`
	OpenAI    CloudSettings  `json:"openai"`
	Anthropic CloudSettings  `json:"anthropic"`
}

type fileLayout struct {
	LLM LLMSettings `json:"llm"`
}

// ProviderSettings is the flattened view the provider factory needs.
type ProviderSettings struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

func DefaultLLMSettings() LLMSettings {
	return LLMSettings{
		Provider: llm.ProviderOllama,
		Ollama: OllamaSettings{
			BaseURL: ollama.DefaultBaseURL,
			Model:   ollama.DefaultModel,
		},
		OpenAI: CloudSettings{
			Model: openai.DefaultModel,
		},
		Anthropic: CloudSettings{
			Model: anthropic.DefaultModel,
		},
	}
}

// LLMConfigStore owns the JSON settings file. Reads return copies; writes are persisted
// before they become visible.
type LLMConfigStore struct {
	mu       sync.RWMutex
	path     string
	settings LLMSettings
}

// NewLLMConfigStore loads path, creating it with defaults when missing. Keys absent from
// the file are filled from the defaults; values present are kept. An unreadable file is
// logged and replaced in memory by the defaults.
func NewLLMConfigStore(path string) (*LLMConfigStore, error) {
	s := &LLMConfigStore{path: path, settings: DefaultLLMSettings()}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.save(s.settings); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read llm config: %w", err)
	}

	var stored fileLayout
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("[WARN] Invalid LLM config at %s, using defaults: %v", path, err)
		return s, nil
	}

	merged := stored.LLM
	if err := mergo.Merge(&merged, DefaultLLMSettings()); err != nil {
		return nil, fmt.Errorf("merge llm config defaults: %w", err)
	}
	s.settings = merged
	return s, nil
}

func (s *LLMConfigStore) Get() LLMSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update applies fn to a copy of the current settings, validates and saves the result.
// On any error the stored settings are left untouched.
func (s *LLMConfigStore) Update(fn func(*LLMSettings)) (LLMSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings
	fn(&next)

	if !llm.IsSupported(next.Provider) {
		return s.settings, fmt.Errorf("%w: %s", ErrUnsupportedProvider, next.Provider)
	}
	if err := s.save(next); err != nil {
		return s.settings, err
	}
	s.settings = next
	return next, nil
}

// ProviderSettings resolves the connection settings for name. Empty API keys fall back to
// OPENAI_API_KEY / ANTHROPIC_API_KEY.
func (s *LLMConfigStore) ProviderSettings(name string) (ProviderSettings, error) {
	cfg := s.Get()

	switch name {
	case llm.ProviderOllama:
		return ProviderSettings{Provider: name, Model: cfg.Ollama.Model, BaseURL: cfg.Ollama.BaseURL}, nil
	case llm.ProviderOpenAI:
		return ProviderSettings{Provider: name, Model: cfg.OpenAI.Model, APIKey: keyOrEnv(cfg.OpenAI.APIKey, "OPENAI_API_KEY")}, nil
	case llm.ProviderAnthropic:
		return ProviderSettings{Provider: name, Model: cfg.Anthropic.Model, APIKey: keyOrEnv(cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY")}, nil
	default:
		return ProviderSettings{}, fmt.Errorf("%w: %s", ErrUnsupportedProvider, name)
	}
}

// Current resolves the settings of the selected provider.
func (s *LLMConfigStore) Current() (ProviderSettings, error) {
	return s.ProviderSettings(s.Get().Provider)
}

func keyOrEnv(key, env string) string {
	if key != "" {
		return key
	}
	return os.Getenv(env)
}

func (s *LLMConfigStore) save(settings LLMSettings) error {
	data, err := json.MarshalIndent(fileLayout{LLM: settings}, "", "    ")
	if err != nil {
		return fmt.Errorf("encode llm config: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create llm config dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write llm config: %w", err)
	}
	return os.Rename(tmp, s.path)
}
