package service

import (
	"context"

	"ai-brain-be/internal/pkg/logger"
	"ai-brain-be/pkg/events"
)

// publishEvent is fire-and-forget: a broken bus never fails a user action.
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
