package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/itemboard/migrations/item"
	"github.com/ghuser/itemboard/pkg/database"
	"github.com/ghuser/itemboard/pkg/logger"
	"github.com/ghuser/itemboard/pkg/migrator"
	itemdomain "github.com/ghuser/itemboard/services/item/domain"
	"github.com/ghuser/itemboard/services/item/domain/repositories"
	"github.com/ghuser/itemboard/services/item/domain/repositories/repotest"
)

func openTestDB(t *testing.T) *database.Database {
	t.Helper()
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "items.db") + "?_busy_timeout=5000"

	d, err := database.NewPool(ctx, database.DriverSQLite, dsn, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	files, err := item.FS(database.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, migrator.RunMigrations(ctx, d.DB(), database.DriverSQLite, files, logger.Nop()))
	return d
}

func TestItemRepository_Conformance(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repositories.ItemRepository {
		return NewItemRepository(openTestDB(t))
	})
}

func TestItemRepository_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "items.db")
	files, err := item.FS(database.DriverSQLite)
	require.NoError(t, err)

	open := func() *database.Database {
		d, err := database.NewPool(ctx, database.DriverSQLite, "file:"+path, logger.Nop())
		require.NoError(t, err)
		require.NoError(t, migrator.RunMigrations(ctx, d.DB(), database.DriverSQLite, files, logger.Nop()))
		return d
	}

	first := open()
	_, err = NewItemRepository(first).Append(ctx, "Kept")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := open()
	defer second.Close()
	repo := NewItemRepository(second)

	next, err := repo.Append(ctx, "After restart")
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)

	items, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "After restart", items[0].Name.String())
	assert.Equal(t, "Kept", items[1].Name.String())
}

func TestItemRepository_ClosedPoolIsStorageFailure(t *testing.T) {
	d := openTestDB(t)
	repo := NewItemRepository(d)
	require.NoError(t, d.Close())

	_, err := repo.ListAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, itemdomain.ErrStorageFailure))

	_, err = repo.Append(context.Background(), "x")
	assert.True(t, errors.Is(err, itemdomain.ErrStorageFailure))
	assert.Error(t, repo.Ping(context.Background()))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.True(t, isTransient(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.False(t, isTransient(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.False(t, isTransient(errors.New("boom")))
}
