package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMConfigStore_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	store, err := NewLLMConfigStore(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultLLMSettings(), store.Get())

	data, err := os.ReadFile(path)
	require.NoError(t, err, "defaults should be written on first run")

	var onDisk fileLayout
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, "ollama", onDisk.LLM.Provider)
	assert.Equal(t, "http://localhost:11434", onDisk.LLM.Ollama.BaseURL)
	assert.Equal(t, "gemma3:12b", onDisk.LLM.Ollama.Model)
	assert.Equal(t, "gpt-4o", onDisk.LLM.OpenAI.Model)
	assert.Equal(t, "claude-3-opus-20240229", onDisk.LLM.Anthropic.Model)
}

func TestNewLLMConfigStore_DeepMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	partial := `{"llm": {"provider": "openai", "openai": {"api_key": "sk-file"}, "ollama": {"model": "llama3"}}}`
	require.NoError(t, os.WriteFile(path, []byte(partial), 0o600))

	store, err := NewLLMConfigStore(path)
	require.NoError(t, err)

	got := store.Get()
	assert.Equal(t, "openai", got.Provider)
	assert.Equal(t, "sk-file", got.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", got.OpenAI.Model, "missing key filled from defaults")
	assert.Equal(t, "llama3", got.Ollama.Model, "existing value preserved")
	assert.Equal(t, "http://localhost:11434", got.Ollama.BaseURL)
	assert.Equal(t, "claude-3-opus-20240229", got.Anthropic.Model)
}

func TestNewLLMConfigStore_InvalidFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewLLMConfigStore(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultLLMSettings(), store.Get())
}

func TestLLMConfigStore_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store, err := NewLLMConfigStore(path)
	require.NoError(t, err)

	_, err = store.Update(func(s *LLMSettings) {
		s.Provider = "gemini"
	})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
	assert.Equal(t, "ollama", store.Get().Provider, "rejected update leaves settings untouched")

	updated, err := store.Update(func(s *LLMSettings) {
		s.Provider = "anthropic"
		s.Anthropic.APIKey = "sk-ant"
	})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", updated.Provider)

	reloaded, err := NewLLMConfigStore(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", reloaded.Get().Provider)
	assert.Equal(t, "sk-ant", reloaded.Get().Anthropic.APIKey)
}

func TestLLMConfigStore_ProviderSettingsEnvFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("ANTHROPIC_API_KEY", "")

	store, err := NewLLMConfigStore(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	openaiSettings, err := store.ProviderSettings("openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-env", openaiSettings.APIKey)
	assert.Equal(t, "gpt-4o", openaiSettings.Model)

	anthropicSettings, err := store.ProviderSettings("anthropic")
	require.NoError(t, err)
	assert.Empty(t, anthropicSettings.APIKey)

	current, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, "ollama", current.Provider)
	assert.Equal(t, "http://localhost:11434", current.BaseURL)

	_, err = store.ProviderSettings("gemini")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}
