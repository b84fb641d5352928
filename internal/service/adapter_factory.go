package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"ai-transcript-notes-be/internal/config"
	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/pkg/extraction"
	"ai-transcript-notes-be/pkg/llm/factory"
)

// ExtractionAdapter is the slice of *extraction.Adapter the services depend on.
type ExtractionAdapter interface {
	ProviderName() string
	Connected() bool
	CheckConnectivity(ctx context.Context) bool
	Extract(ctx context.Context, text string, opts ...extraction.ExtractOption) []extraction.Entity
}

type IAdapterFactory interface {
	// Current builds an adapter for the provider selected in the settings file.
	Current(ctx context.Context) (ExtractionAdapter, error)
	ForProvider(ctx context.Context, name string) (ExtractionAdapter, error)
}

type adapterFactory struct {
	configStore *config.LLMConfigStore
	probeCache  extraction.ProbeCache
	probeTTL    time.Duration
	logger      logger.ILogger
}

func NewAdapterFactory(
	configStore *config.LLMConfigStore,
	probeCache extraction.ProbeCache,
	probeTTL time.Duration,
	logger logger.ILogger,
) IAdapterFactory {
	return &adapterFactory{
		configStore: configStore,
		probeCache:  probeCache,
		probeTTL:    probeTTL,
		logger:      logger,
	}
}

func (f *adapterFactory) Current(ctx context.Context) (ExtractionAdapter, error) {
	return f.ForProvider(ctx, f.configStore.Get().Provider)
}

func (f *adapterFactory) ForProvider(ctx context.Context, name string) (ExtractionAdapter, error) {
	settings, err := f.configStore.ProviderSettings(name)
	if err != nil {
		return nil, err
	}

	provider, err := factory.NewLLMProvider(settings.Provider, settings.Model, settings.BaseURL, settings.APIKey)
	if err != nil {
		return nil, fmt.Errorf("build %s provider: %w", name, err)
	}

	var opts []extraction.AdapterOption
	if f.probeCache != nil && f.probeTTL > 0 {
		opts = append(opts, extraction.WithProbeCache(f.probeCache, probeKey(settings), f.probeTTL))
	}
	return extraction.NewAdapter(ctx, provider, f.logger, opts...), nil
}

// probeKey identifies a provider configuration without putting the API key in the cache.
func probeKey(s config.ProviderSettings) string {
	sum := sha256.Sum256([]byte(s.Provider + "|" + s.Model + "|" + s.BaseURL + "|" + s.APIKey))
	return s.Provider + ":" + hex.EncodeToString(sum[:8])
}
