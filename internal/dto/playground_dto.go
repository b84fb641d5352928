package dto

import (
	"ai-transcript-notes-be/internal/config"
	"ai-transcript-notes-be/pkg/extraction"
)

type TestExtractionRequest struct {
	Note     string `json:"note" validate:"required"`
	Provider string `json:"provider" validate:"required"`
	Prompt   string `json:"prompt" validate:"required"`
}

type TestExtractionResponse struct {
	Success     bool                `json:"success"`
	Entities    []extraction.Entity `json:"entities"`
	RawResponse string              `json:"raw_response"`
}

type PromptResponse struct {
	ExtractionPrompt string             `json:"extraction_prompt"`
	LLMConfig        config.LLMSettings `json:"llm_config"`
}
