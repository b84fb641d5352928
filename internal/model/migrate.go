package model

import "gorm.io/gorm"

// AutoMigrate creates or updates the messages, entities and note_entities tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Message{}, &NamedEntity{}, &MessageEntity{})
}
