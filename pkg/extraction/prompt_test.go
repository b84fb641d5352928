package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPrompt(t *testing.T) {
	prompt := DefaultPrompt("Met Ann at Acme.")

	assert.Contains(t, prompt, "Text to analyze:\nMet Ann at Acme.\n")
	assert.Contains(t, prompt, "- location: Places mentioned")
	assert.Contains(t, prompt, "just the JSON array.")
	assert.NotContains(t, prompt, "{text}")
}

func TestCustomPrompt(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "placeholder",
			template: "List people in: {text}",
			want:     "List people in: hello",
		},
		{
			name:     "marker line normalized",
			template: "Find entities.\nText to analyze: (paste here)\nReturn JSON.",
			want:     "Find entities.\nText to analyze:\nhello\nReturn JSON.",
		},
		{
			name:     "only first marker is used",
			template: "Text to analyze:\nA\nText to analyze:",
			want:     "Text to analyze:\nhello\nA\nText to analyze:",
		},
		{
			name:     "no marker appends one",
			template: "Find entities.",
			want:     "Find entities.\n\nText to analyze:\nhello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CustomPrompt(tt.template)("hello"))
		})
	}
}

func TestCustomPrompt_DefaultTemplateMatchesDefaultPrompt(t *testing.T) {
	text := strings.Repeat("word ", 5)
	assert.Equal(t, DefaultPrompt(text), CustomPrompt(DefaultTemplate)(text))
}
