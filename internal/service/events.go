package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/marketplace/pkg/logging"
	"github.com/Skotchmaster/marketplace/pkg/metrics"
)

type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

// publish sends an event and only logs on failure; events never fail the
// request that produced them.
func publish(ctx context.Context, p Publisher, topic, key, typ string, data map[string]any) {
	if p == nil {
		return
	}
	ev := Event{Type: typ, OccurredAt: time.Now().UTC(), Data: data}
	if err := p.PublishEvent(ctx, topic, key, ev); err != nil {
		metrics.EventsPublishFailed.WithLabelValues(topic).Inc()
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "type", typ, "error", err)
	}
}
