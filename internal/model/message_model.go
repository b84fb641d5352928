package model

type Message struct {
	Id         int64  `gorm:"primaryKey;autoIncrement"`
	Timestamp  string `gorm:"type:text;not null;index"`
	Transcript string `gorm:"type:text;not null"`
}

func (Message) TableName() string {
	return "messages"
}
