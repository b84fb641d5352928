package dto

type CreateMessageRequest struct {
	Timestamp  string `json:"timestamp" validate:"required,iso8601"`
	Transcript string `json:"transcript" validate:"required"`
}

type CreateMessageResponse struct {
	Id       int64            `json:"id"`
	Success  bool             `json:"success"`
	Entities []EntityResponse `json:"entities"`
	Warning  string           `json:"warning,omitempty"`
}

// UpdateMessageRequest is a partial update; nil fields are left unchanged.
type UpdateMessageRequest struct {
	Id         int64   `json:"-"`
	Timestamp  *string `json:"timestamp" validate:"omitempty,iso8601"`
	Transcript *string `json:"transcript" validate:"omitempty,min=1"`
}

func (r *UpdateMessageRequest) IsEmpty() bool {
	return r.Timestamp == nil && r.Transcript == nil
}

type UpdateMessageResponse struct {
	Success  bool             `json:"success"`
	Entities []EntityResponse `json:"entities"`
	Warning  string           `json:"warning,omitempty"`
}

type ListMessagesRequest struct {
	StartDate string
	EndDate   string
}

type MessageResponse struct {
	Id            int64  `json:"id"`
	Timestamp     string `json:"timestamp"`
	Transcript    string `json:"transcript"`
	FormattedTime string `json:"formatted_time"`
}

type DayMessagesResponse struct {
	Date     string            `json:"date"`
	Messages []MessageResponse `json:"messages"`
}

type StatsResponse struct {
	TotalMessages int64   `json:"total_messages"`
	FirstMessage  *string `json:"first_message"`
	LastMessage   *string `json:"last_message"`
}

type ExtractEntitiesResponse struct {
	Success  bool             `json:"success"`
	Entities []EntityResponse `json:"entities"`
	Warning  string           `json:"warning,omitempty"`
	Error    string           `json:"error,omitempty"`
}
