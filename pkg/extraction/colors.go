package extraction

import "strings"

// Entity types the default prompt asks for. Anything else the model returns is kept as is.
const (
	TypePerson   = "person"
	TypeProject  = "project"
	TypeCompany  = "company"
	TypeTopic    = "topic"
	TypeLocation = "location"
	TypeDate     = "date"
	TypeOther    = "other"
)

var defaultColors = map[string]string{
	TypePerson:   "#FF5733",
	TypeProject:  "#33A1FF",
	TypeCompany:  "#33FF57",
	TypeTopic:    "#A133FF",
	TypeLocation: "#FFD700",
	TypeDate:     "#00CED1",
	TypeOther:    "#808080",
}

// ColorFor returns the display color for an entity type. Unknown types get the "other" color.
func ColorFor(entityType string) string {
	if c, ok := defaultColors[strings.ToLower(entityType)]; ok {
		return c
	}
	return defaultColors[TypeOther]
}
