package extraction

import (
	"context"
	"sync/atomic"
	"time"

	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/pkg/llm"
)

const (
	extractionTemperature = 0.1
	extractionMaxTokens   = 1000

	logModule = "EXTRACTION"
)

// ProbeCache memoizes construction-time connectivity results per provider configuration.
type ProbeCache interface {
	Get(key string) (bool, bool)
	Set(key string, connected bool, ttl time.Duration)
}

type AdapterOption func(*Adapter)

// WithProbeCache lets construction reuse a recent probe result stored under key.
func WithProbeCache(cache ProbeCache, key string, ttl time.Duration) AdapterOption {
	return func(a *Adapter) {
		a.probeCache = cache
		a.probeKey = key
		a.probeTTL = ttl
	}
}

// Adapter wraps one LLM backend with connectivity tracking, prompt construction and
// response parsing. It is safe for concurrent use.
type Adapter struct {
	provider  llm.LLMProvider
	logger    logger.ILogger
	connected atomic.Bool

	probeCache ProbeCache
	probeKey   string
	probeTTL   time.Duration
}

// NewAdapter probes the backend once and remembers the result.
func NewAdapter(ctx context.Context, provider llm.LLMProvider, log logger.ILogger, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		provider: provider,
		logger:   log,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.probeCache != nil {
		if connected, ok := a.probeCache.Get(a.probeKey); ok {
			a.connected.Store(connected)
			return a
		}
	}

	connected := a.CheckConnectivity(ctx)
	if a.probeCache != nil {
		a.probeCache.Set(a.probeKey, connected, a.probeTTL)
	}
	return a
}

func (a *Adapter) ProviderName() string {
	return a.provider.Name()
}

// Connected reports the cached connectivity flag without probing.
func (a *Adapter) Connected() bool {
	return a.connected.Load()
}

// CheckConnectivity probes the backend and refreshes the cached flag.
func (a *Adapter) CheckConnectivity(ctx context.Context) bool {
	err := a.provider.Ping(ctx)
	a.connected.Store(err == nil)

	if err != nil {
		a.logger.Warn(logModule, "LLM backend not reachable", map[string]interface{}{
			"provider": a.provider.Name(),
			"error":    err.Error(),
		})
		return false
	}
	return true
}

type extractOptions struct {
	promptBuilder PromptBuilder
	observer      func(raw string)
}

type ExtractOption func(*extractOptions)

// WithPromptBuilder replaces the default prompt for a single call.
func WithPromptBuilder(b PromptBuilder) ExtractOption {
	return func(o *extractOptions) {
		o.promptBuilder = b
	}
}

// WithResponseObserver receives the raw model answer before it is parsed.
func WithResponseObserver(fn func(raw string)) ExtractOption {
	return func(o *extractOptions) {
		o.observer = fn
	}
}

// Extract sends text to the backend and returns the parsed entities. It never fails:
// an unreachable backend, a generation error or an unreadable answer all give an empty slice.
// Callers tell "nothing found" from "backend down" through Connected.
func (a *Adapter) Extract(ctx context.Context, text string, opts ...ExtractOption) []Entity {
	o := extractOptions{promptBuilder: DefaultPrompt}
	for _, opt := range opts {
		opt(&o)
	}

	if !a.Connected() && !a.CheckConnectivity(ctx) {
		a.logger.Warn(logModule, "Skipping extraction, backend unavailable", map[string]interface{}{
			"provider": a.provider.Name(),
		})
		return []Entity{}
	}

	raw, err := a.provider.Generate(ctx, o.promptBuilder(text),
		llm.WithTemperature(extractionTemperature),
		llm.WithSystemPrompt(SystemPrompt),
		llm.WithMaxTokens(extractionMaxTokens),
	)
	if err != nil {
		a.connected.Store(false)
		a.logger.Error(logModule, "Entity extraction call failed", map[string]interface{}{
			"provider": a.provider.Name(),
			"error":    err.Error(),
		})
		return []Entity{}
	}

	if o.observer != nil {
		o.observer(raw)
	}

	entities, err := parseResponse(raw)
	if err != nil {
		a.logger.Warn(logModule, "Could not parse entities from LLM response", map[string]interface{}{
			"provider": a.provider.Name(),
			"error":    err.Error(),
			"response": truncate(raw, 500),
		})
	}
	return entities
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
