package service

import (
	"context"
	"time"

	"healthcare-chatbot-be/internal/pkg/logger"
	"healthcare-chatbot-be/pkg/events"
)

// eventPublishTimeout bounds how long a request waits on the audit bus.
const eventPublishTimeout = 500 * time.Millisecond

// publishEvent ships an audit event when a bus is configured. Failures are logged, never returned.
func publishEvent(ctx context.Context, pub events.Publisher, log logger.ILogger, eventType string, data map[string]interface{}) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, eventPublishTimeout)
	defer cancel()

	if err := pub.Publish(ctx, events.New(eventType, data)); err != nil {
		log.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
