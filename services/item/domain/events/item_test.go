package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/itemboard/services/item/domain/events"
)

func TestNewItemCreatedEvent(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	evt := events.NewItemCreatedEvent(42, "Test Item", now)

	if evt.EventID == uuid.Nil {
		t.Fatal("expected non-nil event id")
	}
	if evt.Version != events.ItemCreatedEventVersion {
		t.Errorf("Version: got %d", evt.Version)
	}
	if evt.ItemID != 42 || evt.Name != "Test Item" {
		t.Errorf("unexpected payload: %+v", evt)
	}
	if evt.OccurredAt.Location() != time.UTC || !evt.OccurredAt.Equal(now) {
		t.Errorf("OccurredAt must be the same instant in UTC, got %v", evt.OccurredAt)
	}

	other := events.NewItemCreatedEvent(42, "Test Item", now)
	if other.EventID == evt.EventID {
		t.Error("expected unique event ids")
	}
}

func TestItemCreatedEvent_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(events.NewItemCreatedEvent(1, "Widget", time.Now()))
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "item_id", "name", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestTopicItemCreated_Value(t *testing.T) {
	if events.TopicItemCreated != "item.created" {
		t.Errorf("expected %q, got %q", "item.created", events.TopicItemCreated)
	}
}
