package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/itemboard/pkg/logger"
	itemEvents "github.com/ghuser/itemboard/services/item/domain/events"
)

// itemCreatedHandler records item.created deliveries. Handlers must be
// idempotent: EventBus retries up to 3x and delivery is at-least-once.
type itemCreatedHandler struct {
	log      logger.Logger
	received metric.Int64Counter
}

func newItemCreatedHandler(log logger.Logger) (*itemCreatedHandler, error) {
	received, err := otel.Meter("itemboard/worker").Int64Counter(
		"item_created_events_total",
		metric.WithDescription("item.created events consumed by the worker"),
	)
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}
	return &itemCreatedHandler{log: log, received: received}, nil
}

func (h *itemCreatedHandler) Handle(ctx context.Context, msg *message.Message) error {
	var evt itemEvents.ItemCreatedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode %s: %w", itemEvents.TopicItemCreated, err)
	}
	if evt.Version > itemEvents.ItemCreatedEventVersion {
		h.log.WarnContext(ctx, "item.created from a newer schema, reading known fields",
			"version", evt.Version, "event_id", evt.EventID)
	}

	h.received.Add(ctx, 1, metric.WithAttributes(attribute.Int("version", evt.Version)))
	h.log.InfoContext(ctx, "item created",
		"event_id", evt.EventID,
		"item_id", evt.ItemID,
		"name", evt.Name,
		"occurred_at", evt.OccurredAt,
	)
	return nil
}
