package service

import (
	"context"

	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/pkg/events"
)

// publishEvent is best effort; a failed publish is logged and never fails the request.
func publishEvent(ctx context.Context, publisher events.Publisher, log logger.ILogger, eventType string, data map[string]interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events.New(eventType, data)); err != nil {
		log.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
