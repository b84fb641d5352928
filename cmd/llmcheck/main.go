package main

import (
	"context"
	"flag"
	"os"

	"ai-transcript-notes-be/internal/config"
	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/pkg/extraction"
	"ai-transcript-notes-be/pkg/llm"
	"ai-transcript-notes-be/pkg/llm/factory"

	"github.com/fatih/color"
)

// llmcheck pings every configured LLM backend and, with -text, runs one extraction against
// the active provider.
func main() {
	text := flag.String("text", "", "sample transcript to extract entities from")
	flag.Parse()

	cfg := config.Load()
	store, err := config.NewLLMConfigStore(cfg.LLM.ConfigPath)
	if err != nil {
		color.Red("Failed to load %s: %v", cfg.LLM.ConfigPath, err)
		os.Exit(1)
	}

	ctx := context.Background()
	active := store.Get().Provider
	color.Cyan("Checking LLM providers (active: %s)\n", active)

	failed := false
	for _, name := range llm.SupportedProviders {
		settings, err := store.ProviderSettings(name)
		if err != nil {
			color.Red("  %-10s config error: %v", name, err)
			failed = failed || name == active
			continue
		}
		provider, err := factory.NewLLMProvider(settings.Provider, settings.Model, settings.BaseURL, settings.APIKey)
		if err != nil {
			color.Red("  %-10s init error: %v", name, err)
			failed = failed || name == active
			continue
		}
		if err := provider.Ping(ctx); err != nil {
			color.Yellow("  %-10s unreachable (%s): %v", name, settings.Model, err)
			failed = failed || name == active
			continue
		}
		color.Green("  %-10s ok (%s)", name, settings.Model)
	}

	if *text != "" {
		settings, err := store.Current()
		if err != nil {
			color.Red("Failed to resolve active provider: %v", err)
			os.Exit(1)
		}
		provider, err := factory.NewLLMProvider(settings.Provider, settings.Model, settings.BaseURL, settings.APIKey)
		if err != nil {
			color.Red("Failed to build %s: %v", settings.Provider, err)
			os.Exit(1)
		}

		adapter := extraction.NewAdapter(ctx, provider, logger.NewNopLogger())
		var raw string
		entities := adapter.Extract(ctx, *text, extraction.WithResponseObserver(func(r string) { raw = r }))

		color.Yellow("\nRaw response:")
		color.White(raw)
		color.Yellow("\nEntities (%d):", len(entities))
		for _, e := range entities {
			color.Green("  [%s] %s %s", e.Type, e.Label, e.Color)
		}
	}

	if failed {
		os.Exit(1)
	}
}
