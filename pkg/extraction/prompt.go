package extraction

import "strings"

const (
	// TextMarker precedes the text to analyze in every extraction prompt.
	TextMarker = "Text to analyze:"

	textPlaceholder = "{text}"

	SystemPrompt = "You are an expert at extracting named entities from text."
)

// DefaultTemplate is the stock extraction prompt. {text} is replaced by the transcript.
const DefaultTemplate = `
Extract the following entity types from this text:
- person: Names of people mentioned
- project: Project names or initiatives
- company: Company or organization names
- topic: Key topics or subjects discussed
- location: Places mentioned
- date: Dates or time periods mentioned

Text to analyze:
{text}

Return ONLY a JSON array of objects with 'type' and 'label' properties, like this:
[
  {"type": "person", "label": "John Smith"},
  {"type": "company", "label": "Acme Corp"},
  {"type": "topic", "label": "AI Development"}
]

Do not include any explanations or other text, just the JSON array.
`

// PromptBuilder turns the text to analyze into the full prompt sent to the model.
type PromptBuilder func(text string) string

// DefaultPrompt renders DefaultTemplate for text.
func DefaultPrompt(text string) string {
	return strings.Replace(DefaultTemplate, textPlaceholder, text, 1)
}

// CustomPrompt builds a PromptBuilder from a user supplied template.
//
// A {text} placeholder is substituted directly. Without one, the first line containing
// TextMarker is normalized to the bare marker and the text goes on the line after it.
// Templates with neither get the marker and text appended.
func CustomPrompt(template string) PromptBuilder {
	return func(text string) string {
		if strings.Contains(template, textPlaceholder) {
			return strings.ReplaceAll(template, textPlaceholder, text)
		}

		lines := strings.Split(template, "\n")
		for i, line := range lines {
			if !strings.Contains(line, TextMarker) {
				continue
			}
			out := make([]string, 0, len(lines)+1)
			out = append(out, lines[:i]...)
			out = append(out, TextMarker, text)
			out = append(out, lines[i+1:]...)
			return strings.Join(out, "\n")
		}

		return template + "\n\n" + TextMarker + "\n" + text
	}
}
