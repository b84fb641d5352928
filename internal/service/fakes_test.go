package service

import (
	"context"
	"errors"
	"sync"

	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/pkg/events"
	"ai-transcript-notes-be/pkg/extraction"
	"ai-transcript-notes-be/pkg/llm"
)

var errBackendDown = errors.New("connection refused")

// scriptedProvider answers every Generate with response, or fails with genErr.
type scriptedProvider struct {
	name     string
	pingErr  error
	genErr   error
	response string

	mu      sync.Mutex
	prompts []string
}

func (p *scriptedProvider) Name() string { return p.name }

func (p *scriptedProvider) Ping(ctx context.Context) error { return p.pingErr }

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.mu.Lock()
	p.prompts = append(p.prompts, prompt)
	p.mu.Unlock()
	if p.genErr != nil {
		return "", p.genErr
	}
	return p.response, nil
}

func (p *scriptedProvider) lastPrompt() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.prompts) == 0 {
		return ""
	}
	return p.prompts[len(p.prompts)-1]
}

// stubAdapterFactory builds a fresh adapter per call, like the real factory does.
type stubAdapterFactory struct {
	providers map[string]*scriptedProvider
	current   string
}

func newStubAdapterFactory(current string, providers ...*scriptedProvider) *stubAdapterFactory {
	f := &stubAdapterFactory{providers: map[string]*scriptedProvider{}, current: current}
	for _, p := range providers {
		f.providers[p.name] = p
	}
	return f
}

func (f *stubAdapterFactory) Current(ctx context.Context) (ExtractionAdapter, error) {
	return f.ForProvider(ctx, f.current)
}

func (f *stubAdapterFactory) ForProvider(ctx context.Context, name string) (ExtractionAdapter, error) {
	p, ok := f.providers[name]
	if !ok {
		return nil, errors.New("no provider " + name)
	}
	return extraction.NewAdapter(ctx, p, logger.NewNopLogger()), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}
