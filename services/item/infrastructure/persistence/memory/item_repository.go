// Package memory is an in-process item store. Items live for the lifetime of
// the process; IDs come from a counter guarded by the same lock as the slice.
package memory

import (
	"context"
	"sync"

	"github.com/ghuser/itemboard/services/item/domain/models"
)

// ItemRepository implements repositories.ItemRepository in memory.
type ItemRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  []models.Item // ascending by ID
}

// NewItemRepository returns an empty in-memory store.
func NewItemRepository() *ItemRepository {
	return &ItemRepository{nextID: 1}
}

func (r *ItemRepository) Append(_ context.Context, name models.ItemName) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := models.Item{ID: r.nextID, Name: name}
	r.nextID++
	r.items = append(r.items, item)
	return &item, nil
}

func (r *ItemRepository) ListAll(_ context.Context) ([]*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Item, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		item := r.items[i]
		out = append(out, &item)
	}
	return out, nil
}

func (r *ItemRepository) Ping(context.Context) error { return nil }

func (r *ItemRepository) Close() error { return nil }
