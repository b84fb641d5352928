package service

import (
	"context"

	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/pkg/events"
)

// EventSource is satisfied by the in-process bus and the NATS subscriber.
type EventSource interface {
	Listen(ctx context.Context, handler events.Handler) error
}

// IActivityService writes every domain event to the structured log so it shows up in /api/logs.
type IActivityService interface {
	Start(ctx context.Context) error
}

type activityService struct {
	source EventSource
	logger logger.ILogger
}

func NewActivityService(source EventSource, logger logger.ILogger) IActivityService {
	return &activityService{
		source: source,
		logger: logger,
	}
}

func (s *activityService) Start(ctx context.Context) error {
	return s.source.Listen(ctx, s.handle)
}

func (s *activityService) handle(ctx context.Context, event events.BaseEvent) error {
	details := map[string]interface{}{
		"event_id":    event.ID,
		"occurred_at": event.OccurredAt,
	}
	for k, v := range event.Data {
		details[k] = v
	}
	s.logger.Info("ACTIVITY", event.Type, details)
	return nil
}
