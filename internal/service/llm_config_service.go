package service

import (
	"context"
	"errors"
	"strings"

	"ai-transcript-notes-be/internal/config"
	"ai-transcript-notes-be/internal/dto"
	"ai-transcript-notes-be/internal/pkg/apperror"
	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/pkg/llm"
)

type ILLMConfigService interface {
	Get(ctx context.Context) dto.LLMConfigResponse
	Update(ctx context.Context, req *dto.UpdateLLMConfigRequest) (dto.LLMConfigResponse, error)
}

type llmConfigService struct {
	configStore *config.LLMConfigStore
	logger      logger.ILogger
}

func NewLLMConfigService(configStore *config.LLMConfigStore, logger logger.ILogger) ILLMConfigService {
	return &llmConfigService{
		configStore: configStore,
		logger:      logger,
	}
}

func (s *llmConfigService) Get(ctx context.Context) dto.LLMConfigResponse {
	return s.configStore.Get()
}

func (s *llmConfigService) Update(ctx context.Context, req *dto.UpdateLLMConfigRequest) (dto.LLMConfigResponse, error) {
	if req.IsEmpty() {
		return dto.LLMConfigResponse{}, apperror.Validation("No data provided")
	}
	if req.Provider != nil && !llm.IsSupported(*req.Provider) {
		return dto.LLMConfigResponse{}, apperror.Validation("Unsupported provider: " + *req.Provider +
			" (expected one of " + strings.Join(llm.SupportedProviders, ", ") + ")")
	}

	updated, err := s.configStore.Update(func(c *config.LLMSettings) {
		if req.Provider != nil {
			c.Provider = *req.Provider
		}
		if p := req.Ollama; p != nil {
			setIfPresent(&c.Ollama.BaseURL, p.BaseURL)
			setIfPresent(&c.Ollama.Model, p.Model)
		}
		if p := req.OpenAI; p != nil {
			setIfPresent(&c.OpenAI.APIKey, p.APIKey)
			setIfPresent(&c.OpenAI.Model, p.Model)
		}
		if p := req.Anthropic; p != nil {
			setIfPresent(&c.Anthropic.APIKey, p.APIKey)
			setIfPresent(&c.Anthropic.Model, p.Model)
		}
	})
	if err != nil {
		if errors.Is(err, config.ErrUnsupportedProvider) {
			return dto.LLMConfigResponse{}, apperror.Validation(err.Error())
		}
		return dto.LLMConfigResponse{}, apperror.Internal("Failed to save LLM configuration", err)
	}

	s.logger.Info("CONFIG", "LLM configuration updated", map[string]interface{}{
		"provider": updated.Provider,
	})
	return updated, nil
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
