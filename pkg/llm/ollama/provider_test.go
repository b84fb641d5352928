package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-transcript-notes-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeOllama(t *testing.T, answer string) (*httptest.Server, *map[string]any) {
	t.Helper()
	captured := map[string]any{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[{"name":"gemma3:12b"}]}`))
	})
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":    "gemma3:12b",
			"response": answer,
			"done":     true,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestOllamaProvider_Defaults(t *testing.T) {
	p, err := NewOllamaProvider("", "")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, p.BaseURL)
	assert.Equal(t, DefaultModel, p.ModelName)
	assert.Equal(t, llm.ProviderOllama, p.Name())
}

func TestOllamaProvider_Ping(t *testing.T) {
	srv, _ := newFakeOllama(t, "")

	p, err := NewOllamaProvider(srv.URL, "gemma3:12b")
	require.NoError(t, err)
	assert.NoError(t, p.Ping(context.Background()))

	down, err := NewOllamaProvider("http://127.0.0.1:1", "gemma3:12b")
	require.NoError(t, err)
	assert.Error(t, down.Ping(context.Background()))
}

func TestOllamaProvider_Generate(t *testing.T) {
	srv, captured := newFakeOllama(t, `[{"type":"person","label":"Ann"}]`)

	p, err := NewOllamaProvider(srv.URL+"/", "gemma3:12b")
	require.NoError(t, err)

	out, err := p.Generate(context.Background(), "hello",
		llm.WithTemperature(0.1),
		llm.WithSystemPrompt("be terse"),
	)
	require.NoError(t, err)
	assert.Equal(t, `[{"type":"person","label":"Ann"}]`, out)

	assert.Equal(t, "gemma3:12b", (*captured)["model"])
	assert.Equal(t, "hello", (*captured)["prompt"])
	assert.Equal(t, "be terse", (*captured)["system"])
	assert.Equal(t, false, (*captured)["stream"])

	opts, ok := (*captured)["options"].(map[string]any)
	require.True(t, ok, "options should be sent")
	assert.InDelta(t, 0.1, opts["temperature"], 0.0001)
}
