package memory

import (
	"context"
	"testing"

	"github.com/ghuser/itemboard/services/item/domain/repositories"
	"github.com/ghuser/itemboard/services/item/domain/repositories/repotest"
)

func TestItemRepository_Conformance(t *testing.T) {
	repotest.Run(t, func(*testing.T) repositories.ItemRepository {
		return NewItemRepository()
	})
}

func TestItemRepository_ListReturnsCopies(t *testing.T) {
	repo := NewItemRepository()
	if _, err := repo.Append(context.Background(), "original"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	items, _ := repo.ListAll(context.Background())
	items[0].Name = "mutated"

	again, _ := repo.ListAll(context.Background())
	if again[0].Name != "original" {
		t.Fatalf("caller mutation leaked into store: %q", again[0].Name)
	}
}
