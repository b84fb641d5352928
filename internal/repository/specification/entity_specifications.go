package specification

import "gorm.io/gorm"

// ByTypeAndLabel matches the exact, case-sensitive identity of an entity.
type ByTypeAndLabel struct {
	Type  string
	Label string
}

func (s ByTypeAndLabel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(`"type" = ? AND label = ?`, s.Type, s.Label)
}

// ByTypeThenLabel is the display order for entity lists.
type ByTypeThenLabel struct{}

func (s ByTypeThenLabel) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(`entities."type" ASC`).Order("entities.label ASC")
}
