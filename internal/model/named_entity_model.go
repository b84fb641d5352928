package model

import "time"

type NamedEntity struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	Type      string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_entities_type_label,priority:1"`
	Label     string    `gorm:"type:text;not null;uniqueIndex:uq_entities_type_label,priority:2"`
	Color     string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (NamedEntity) TableName() string {
	return "entities"
}

// MessageEntity is the message/entity junction. Both foreign keys cascade on delete.
type MessageEntity struct {
	MessageId int64        `gorm:"primaryKey;autoIncrement:false"`
	EntityId  int64        `gorm:"primaryKey;autoIncrement:false;index"`
	Message   *Message     `gorm:"foreignKey:MessageId;constraint:OnDelete:CASCADE"`
	Entity    *NamedEntity `gorm:"foreignKey:EntityId;constraint:OnDelete:CASCADE"`
}

func (MessageEntity) TableName() string {
	return "note_entities"
}
