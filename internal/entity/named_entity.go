package entity

import "time"

// NamedEntity is a deduplicated (Type, Label) pair shared by every message mentioning it.
type NamedEntity struct {
	Id        int64
	Type      string
	Label     string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MessageEntity links a message to an entity it mentions.
type MessageEntity struct {
	MessageId int64
	EntityId  int64
}
