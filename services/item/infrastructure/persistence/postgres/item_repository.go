package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/itemboard/pkg/database"
	"github.com/ghuser/itemboard/pkg/events"
	itemdomain "github.com/ghuser/itemboard/services/item/domain"
	domainevents "github.com/ghuser/itemboard/services/item/domain/events"
	"github.com/ghuser/itemboard/services/item/domain/models"
	"github.com/ghuser/itemboard/services/item/infrastructure/persistence/postgres/db"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
// IDs come from the items identity column.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
	now func() time.Time
}

// NewItemRepository returns an ItemRepository backed by the given connection pool.
// When bus is non-nil every Append also writes an ItemCreatedEvent to the outbox
// in the same transaction.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus, now: time.Now}
}

// Append inserts name and returns the stored row.
func (r *ItemRepository) Append(ctx context.Context, name models.ItemName) (*models.Item, error) {
	var item *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).InsertItem(ctx, name.String())
		if err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
		item = rowToItem(row)

		if r.bus != nil {
			if err := r.publishCreated(ctx, tx, item); err != nil {
				return fmt.Errorf("publish item created: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, itemdomain.NewStorageError("append item", err, isTransient(err))
	}
	return item, nil
}

// ListAll returns every item, newest first.
func (r *ItemRepository) ListAll(ctx context.Context) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItems(ctx)
	if err != nil {
		return nil, itemdomain.NewStorageError("list items", err, isTransient(err))
	}

	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items, nil
}

func (r *ItemRepository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return itemdomain.NewStorageError("ping", err, false)
	}
	return nil
}

// Close is a no-op: the pool is owned by the caller that opened it.
func (r *ItemRepository) Close() error { return nil }

func (r *ItemRepository) publishCreated(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	event := domainevents.NewItemCreatedEvent(item.ID, item.Name.String(), r.now())
	msg, err := events.NewJSONMessage(event.EventID.String(), event)
	if err != nil {
		return err
	}
	msg.Metadata.Set("event_version", fmt.Sprint(event.Version))
	return r.bus.PublishTx(ctx, tx, domainevents.TopicItemCreated, msg)
}

// isTransient reports whether err is known not to have reached the server.
func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}

func rowToItem(row db.Item) *models.Item {
	return &models.Item{
		ID:   row.ID,
		Name: models.ItemName(row.Name),
	}
}
