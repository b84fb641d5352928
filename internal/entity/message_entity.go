package entity

// Message is one timestamped transcript. Timestamp keeps the ISO-8601 text the client sent.
type Message struct {
	Id         int64
	Timestamp  string
	Transcript string
}

type MessageStats struct {
	TotalMessages int64
	FirstMessage  *string
	LastMessage   *string
}
