package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ghuser/itemboard/pkg/app"
	"github.com/ghuser/itemboard/pkg/config"
	"github.com/ghuser/itemboard/pkg/logger"
	"github.com/ghuser/itemboard/services/item/infrastructure/persistence/memory"
	"github.com/ghuser/itemboard/services/item/infrastructure/persistence/sqlite"
)

func TestNewItemRepository_Memory(t *testing.T) {
	repo, err := NewItemRepository(&app.Application{Config: &config.Config{DBDriver: config.DriverMemory}})
	if err != nil {
		t.Fatalf("NewItemRepository: %v", err)
	}
	if _, ok := repo.(*memory.ItemRepository); !ok {
		t.Fatalf("expected memory store, got %T", repo)
	}
}

func TestNewItemRepository_SQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "items.db")}
	a, err := app.New(context.Background(), cfg, logger.Nop(), app.Options{Migrate: true})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	defer a.Close() //nolint:errcheck

	repo, err := NewItemRepository(a)
	if err != nil {
		t.Fatalf("NewItemRepository: %v", err)
	}
	if _, ok := repo.(*sqlite.ItemRepository); !ok {
		t.Fatalf("expected sqlite store, got %T", repo)
	}
	if _, err := repo.Append(context.Background(), "Widget"); err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestNewItemRepository_Unknown(t *testing.T) {
	if _, err := NewItemRepository(&app.Application{Config: &config.Config{DBDriver: "oracle"}}); err == nil {
		t.Fatal("expected error")
	}
}
