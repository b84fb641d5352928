package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Entity is one extracted (type, label) pair with its derived display color.
type Entity struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Color string `json:"color"`
}

var errNoJSONArray = errors.New("no JSON array found in response")

type rawEntity struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

// ParseResponse pulls the JSON array out of a model answer. Anything it cannot read
// yields an empty slice.
func ParseResponse(raw string) []Entity {
	entities, _ := parseResponse(raw)
	return entities
}

// parseResponse reads the span from the first '[' to the last ']' as a JSON array of
// {type, label}. Colors are always derived from the type, never taken from the model.
func parseResponse(raw string) ([]Entity, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end < start {
		return []Entity{}, errNoJSONArray
	}

	var items []rawEntity
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return []Entity{}, fmt.Errorf("decode entity array: %w", err)
	}

	entities := make([]Entity, 0, len(items))
	for _, item := range items {
		label := strings.TrimSpace(item.Label)
		if label == "" {
			continue
		}
		entityType := strings.TrimSpace(item.Type)
		if entityType == "" {
			entityType = TypeOther
		}
		entities = append(entities, Entity{
			Type:  entityType,
			Label: label,
			Color: ColorFor(entityType),
		})
	}
	return entities, nil
}
