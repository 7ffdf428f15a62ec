// Package services contains stateless domain services for the item bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"

	"github.com/ghuser/itemboard/services/item/domain/models"
)

// ValidateStoredItem checks the invariants every Item returned by a store must
// satisfy: a store-assigned positive ID and a name that passes NewItemName.
func ValidateStoredItem(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	if item.ID <= 0 {
		return fmt.Errorf("id must be assigned, got %d", item.ID)
	}

	if _, err := models.NewItemName(item.Name.String()); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	return nil
}

// IsNewestFirst reports whether items are ordered by ID strictly descending.
func IsNewestFirst(items []*models.Item) bool {
	for i := 1; i < len(items); i++ {
		if items[i].ID >= items[i-1].ID {
			return false
		}
	}
	return true
}
