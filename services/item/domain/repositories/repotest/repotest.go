// Package repotest is a conformance suite for repositories.ItemRepository
// implementations. Each backend's tests call Run with a factory returning an
// empty store.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ghuser/itemboard/services/item/domain/models"
	"github.com/ghuser/itemboard/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/itemboard/services/item/domain/services"
)

// Factory returns a fresh, empty repository. Cleanup is the caller's job
// (typically via t.Cleanup).
type Factory func(t *testing.T) repositories.ItemRepository

// Run executes every conformance check against repositories built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Helper()

	t.Run("empty store lists nothing", func(t *testing.T) {
		repo := newRepo(t)
		items, err := repo.ListAll(context.Background())
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected no items, got %d", len(items))
		}
	})

	t.Run("append assigns id and keeps name verbatim", func(t *testing.T) {
		repo := newRepo(t)
		item, err := repo.Append(context.Background(), "  Test Item ")
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		if err := domainsvcs.ValidateStoredItem(item); err != nil {
			t.Fatalf("appended item violates invariants: %v", err)
		}
		if item.Name != "  Test Item " {
			t.Fatalf("expected name kept verbatim, got %q", item.Name)
		}
	})

	t.Run("ids strictly increase", func(t *testing.T) {
		repo := newRepo(t)
		var last int64
		for i := 0; i < 5; i++ {
			item, err := repo.Append(context.Background(), models.ItemName(fmt.Sprintf("item-%d", i)))
			if err != nil {
				t.Fatalf("Append #%d: %v", i, err)
			}
			if item.ID <= last {
				t.Fatalf("id %d not greater than previous %d", item.ID, last)
			}
			last = item.ID
		}
	})

	t.Run("lists newest first", func(t *testing.T) {
		repo := newRepo(t)
		a := mustAppend(t, repo, "A")
		b := mustAppend(t, repo, "B")

		items := mustList(t, repo)
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].ID != b.ID || items[1].ID != a.ID {
			t.Fatalf("expected [B, A], got [%s(%d), %s(%d)]", items[0].Name, items[0].ID, items[1].Name, items[1].ID)
		}
		if !domainsvcs.IsNewestFirst(items) {
			t.Fatal("items not ordered by id descending")
		}
	})

	t.Run("appended item is listed with same id and name", func(t *testing.T) {
		repo := newRepo(t)
		created := mustAppend(t, repo, "Round Trip")

		items := mustList(t, repo)
		if len(items) == 0 || items[0].ID != created.ID || items[0].Name != created.Name {
			t.Fatalf("expected %+v at head of %+v", created, items)
		}
	})

	t.Run("listing twice is stable", func(t *testing.T) {
		repo := newRepo(t)
		mustAppend(t, repo, "one")
		mustAppend(t, repo, "two")

		first := mustList(t, repo)
		second := mustList(t, repo)
		if len(first) != len(second) {
			t.Fatalf("length changed: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if *first[i] != *second[i] {
				t.Fatalf("item %d changed: %+v vs %+v", i, first[i], second[i])
			}
		}
	})

	t.Run("concurrent appends get unique ids", func(t *testing.T) {
		repo := newRepo(t)
		const n = 16

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			seen = make(map[int64]bool, n)
			errs []error
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				item, err := repo.Append(context.Background(), models.ItemName(fmt.Sprintf("c-%d", i)))
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return
				}
				seen[item.ID] = true
			}(i)
		}
		wg.Wait()

		if len(errs) > 0 {
			t.Fatalf("concurrent Append failed: %v", errs[0])
		}
		if len(seen) != n {
			t.Fatalf("expected %d unique ids, got %d", n, len(seen))
		}
		if items := mustList(t, repo); len(items) != n || !domainsvcs.IsNewestFirst(items) {
			t.Fatalf("expected %d items newest first, got %d", n, len(items))
		}
	})

	t.Run("ping", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.Ping(context.Background()); err != nil {
			t.Fatalf("Ping: %v", err)
		}
	})
}

func mustAppend(t *testing.T, repo repositories.ItemRepository, name models.ItemName) *models.Item {
	t.Helper()
	item, err := repo.Append(context.Background(), name)
	if err != nil {
		t.Fatalf("Append(%q): %v", name, err)
	}
	return item
}

func mustList(t *testing.T, repo repositories.ItemRepository) []*models.Item {
	t.Helper()
	items, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	return items
}
