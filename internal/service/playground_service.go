package service

import (
	"context"
	"strings"

	"ai-transcript-notes-be/internal/config"
	"ai-transcript-notes-be/internal/dto"
	"ai-transcript-notes-be/internal/pkg/apperror"
	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/pkg/extraction"
	"ai-transcript-notes-be/pkg/llm"
)

// IPlaygroundService runs one-off extractions with a caller supplied prompt. Nothing is persisted.
type IPlaygroundService interface {
	Run(ctx context.Context, req *dto.TestExtractionRequest) (*dto.TestExtractionResponse, error)
	Prompt(ctx context.Context) *dto.PromptResponse
}

type playgroundService struct {
	adapterFactory IAdapterFactory
	configStore    *config.LLMConfigStore
	logger         logger.ILogger
}

func NewPlaygroundService(adapterFactory IAdapterFactory, configStore *config.LLMConfigStore, logger logger.ILogger) IPlaygroundService {
	return &playgroundService{
		adapterFactory: adapterFactory,
		configStore:    configStore,
		logger:         logger,
	}
}

func (s *playgroundService) Run(ctx context.Context, req *dto.TestExtractionRequest) (*dto.TestExtractionResponse, error) {
	if strings.TrimSpace(req.Note) == "" {
		return nil, apperror.Validation("Note cannot be empty")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, apperror.Validation("Prompt cannot be empty")
	}
	if !llm.IsSupported(req.Provider) {
		return nil, apperror.Validation("Unsupported provider: " + req.Provider)
	}

	adapter, err := s.adapterFactory.ForProvider(ctx, req.Provider)
	if err != nil {
		return nil, apperror.Internal("Failed to initialise provider", err)
	}
	if !adapter.Connected() && !adapter.CheckConnectivity(ctx) {
		return nil, apperror.Unavailable(UnreachableWarning(req.Provider), nil)
	}

	var raw string
	entities := adapter.Extract(ctx, req.Note,
		extraction.WithPromptBuilder(extraction.CustomPrompt(req.Prompt)),
		extraction.WithResponseObserver(func(r string) { raw = r }),
	)
	if len(entities) == 0 && !adapter.Connected() {
		return nil, apperror.Unavailable(UnreachableWarning(req.Provider), nil)
	}

	return &dto.TestExtractionResponse{
		Success:     true,
		Entities:    entities,
		RawResponse: raw,
	}, nil
}

func (s *playgroundService) Prompt(ctx context.Context) *dto.PromptResponse {
	return &dto.PromptResponse{
		ExtractionPrompt: extraction.DefaultTemplate,
		LLMConfig:        s.configStore.Get(),
	}
}
