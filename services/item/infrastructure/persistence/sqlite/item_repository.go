// Package sqlite stores items in a local SQLite file. The pool is limited to
// one connection, so AUTOINCREMENT assignment is serialized by the driver.
package sqlite

import (
	"context"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/ghuser/itemboard/pkg/database"
	itemdomain "github.com/ghuser/itemboard/services/item/domain"
	"github.com/ghuser/itemboard/services/item/domain/models"
)

const (
	insertItem = `INSERT INTO items (name) VALUES (?)`
	listItems  = `SELECT id, name FROM items ORDER BY id DESC`
)

// ItemRepository implements repositories.ItemRepository on SQLite.
type ItemRepository struct {
	db *database.Database
}

func NewItemRepository(db *database.Database) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Append(ctx context.Context, name models.ItemName) (*models.Item, error) {
	res, err := r.db.DB().ExecContext(ctx, insertItem, name.String())
	if err != nil {
		return nil, itemdomain.NewStorageError("append item", err, isTransient(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, itemdomain.NewStorageError("append item", err, false)
	}
	return &models.Item{ID: id, Name: name}, nil
}

func (r *ItemRepository) ListAll(ctx context.Context) ([]*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx, listItems)
	if err != nil {
		return nil, itemdomain.NewStorageError("list items", err, isTransient(err))
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, itemdomain.NewStorageError("list items", err, false)
		}
		items = append(items, &models.Item{ID: id, Name: models.ItemName(name)})
	}
	if err := rows.Err(); err != nil {
		return nil, itemdomain.NewStorageError("list items", err, false)
	}
	return items, nil
}

func (r *ItemRepository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return itemdomain.NewStorageError("ping", err, false)
	}
	return nil
}

func (r *ItemRepository) Close() error { return nil }

// isTransient reports lock contention that outlasted the busy timeout; the
// statement did not run and can be repeated.
func isTransient(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
	}
	return false
}
