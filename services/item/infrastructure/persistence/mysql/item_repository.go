// Package mysql stores items in a MySQL table whose AUTO_INCREMENT column
// assigns IDs.
package mysql

import (
	"context"
	"database/sql/driver"
	"errors"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/ghuser/itemboard/pkg/database"
	itemdomain "github.com/ghuser/itemboard/services/item/domain"
	"github.com/ghuser/itemboard/services/item/domain/models"
)

const (
	insertItem = `INSERT INTO items (name) VALUES (?)`
	listItems  = `SELECT id, name FROM items ORDER BY id DESC`
)

// ItemRepository implements repositories.ItemRepository against MySQL.
type ItemRepository struct {
	db *database.Database
}

// NewItemRepository returns an ItemRepository on the given pool.
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
		return nil, itemdomain.NewStorageError("list items", err, isTransient(err))
	}
	return items, nil
}

func (r *ItemRepository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return itemdomain.NewStorageError("ping", err, false)
	}
	return nil
}

// Close is a no-op: the pool belongs to the caller.
func (r *ItemRepository) Close() error { return nil }

// isTransient reports connection failures the driver raises before a
// statement is written to the socket.
func isTransient(err error) bool {
	return errors.Is(err, driver.ErrBadConn) || errors.Is(err, gomysql.ErrInvalidConn)
}
