package specification

import "gorm.io/gorm"

// TimestampBetween keeps messages whose timestamp text sorts within [Start, End].
type TimestampBetween struct {
	Start string
	End   string
}

func (s TimestampBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(`"timestamp" BETWEEN ? AND ?`, s.Start, s.End)
}

// NewestFirst orders messages by timestamp descending, id breaking ties.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(`"timestamp" DESC`).Order("id DESC")
}
