package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicItemCreated is the Watermill topic published when an Item is appended.
const TopicItemCreated = "item.created"

// ItemCreatedEventVersion is the current schema version of ItemCreatedEvent.
const ItemCreatedEventVersion = 1

// ItemCreatedEvent is written to the outbox in the same transaction as the
// item row. Consumers subscribe via EventBus.Subscribe(ctx, TopicItemCreated, ...).
type ItemCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // deduplication key for at-least-once delivery
	Version    int       `json:"version"`
	ItemID     int64     `json:"item_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewItemCreatedEvent builds the event for a freshly appended item.
func NewItemCreatedEvent(itemID int64, name string, now time.Time) ItemCreatedEvent {
	return ItemCreatedEvent{
		EventID:    uuid.New(),
		Version:    ItemCreatedEventVersion,
		ItemID:     itemID,
		Name:       name,
		OccurredAt: now.UTC(),
	}
}
