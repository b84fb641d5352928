package dto

import "ai-transcript-notes-be/internal/config"

type OllamaSettingsPatch struct {
	BaseURL *string `json:"base_url" validate:"omitempty,url"`
	Model   *string `json:"model" validate:"omitempty,min=1"`
}

type CloudSettingsPatch struct {
	APIKey *string `json:"api_key"`
	Model  *string `json:"model" validate:"omitempty,min=1"`
}

// UpdateLLMConfigRequest patches the stored settings. Omitted sections and fields keep their values.
type UpdateLLMConfigRequest struct {
	Provider  *string              `json:"provider"`
	Ollama    *OllamaSettingsPatch `json:"ollama"`
	OpenAI    *CloudSettingsPatch  `json:"openai"`
	Anthropic *CloudSettingsPatch  `json:"anthropic"`
}

func (r *UpdateLLMConfigRequest) IsEmpty() bool {
	return r.Provider == nil && r.Ollama == nil && r.OpenAI == nil && r.Anthropic == nil
}

type LLMConfigResponse = config.LLMSettings
