package repositories

import (
	"context"

	"github.com/ghuser/itemboard/services/item/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Implementations serialize ID assignment so concurrent Appends never share
// an ID, and report every failure as a *domain.StorageError.
type ItemRepository interface {
	// Append assigns the next ID, persists the item, and returns it.
	Append(ctx context.Context, name models.ItemName) (*models.Item, error)

	// ListAll returns every item ordered by ID descending.
	ListAll(ctx context.Context) ([]*models.Item, error)

	// Ping reports whether the underlying medium is reachable.
	Ping(ctx context.Context) error

	// Close releases the store's handle on the medium.
	Close() error
}
