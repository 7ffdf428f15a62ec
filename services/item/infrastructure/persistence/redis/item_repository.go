// Package redis stores items in Redis. IDs come from INCR on a sequence key;
// names live in a hash and ordering comes from a sorted set scored by ID.
package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ghuser/itemboard/pkg/kv"
	itemdomain "github.com/ghuser/itemboard/services/item/domain"
	"github.com/ghuser/itemboard/services/item/domain/models"
)

const defaultPrefix = "items"

// ItemRepository implements repositories.ItemRepository on Redis.
//
// Keys:
//
//	{prefix}:seq    INCR counter, last assigned ID
//	{prefix}        hash id -> name
//	{prefix}:index  sorted set, member and score are the ID
//
// A failed write after INCR leaves a gap in the sequence; an ID is never
// handed out twice.
type ItemRepository struct {
	client *goredis.Client
	prefix string
}

// NewItemRepository returns a store on rc using the default key prefix.
func NewItemRepository(rc *kv.RedisClient) *ItemRepository {
	return NewItemRepositoryWithPrefix(rc, defaultPrefix)
}

// NewItemRepositoryWithPrefix isolates the store's keys under prefix.
func NewItemRepositoryWithPrefix(rc *kv.RedisClient, prefix string) *ItemRepository {
	return &ItemRepository{client: rc.Client(), prefix: prefix}
}

func (r *ItemRepository) seqKey() string   { return r.prefix + ":seq" }
func (r *ItemRepository) hashKey() string  { return r.prefix }
func (r *ItemRepository) indexKey() string { return r.prefix + ":index" }

func (r *ItemRepository) Append(ctx context.Context, name models.ItemName) (*models.Item, error) {
	id, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return nil, itemdomain.NewStorageError("append item", fmt.Errorf("next id: %w", err), isTransient(err))
	}

	field := strconv.FormatInt(id, 10)
	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, r.hashKey(), field, name.String())
		pipe.ZAdd(ctx, r.indexKey(), goredis.Z{Score: float64(id), Member: field})
		return nil
	})
	if err != nil {
		// The consumed id is abandoned, so a retry cannot collide with it.
		return nil, itemdomain.NewStorageError("append item", fmt.Errorf("write item %d: %w", id, err), isTransient(err))
	}
	return &models.Item{ID: id, Name: name}, nil
}

func (r *ItemRepository) ListAll(ctx context.Context) ([]*models.Item, error) {
	ids, err := r.client.ZRevRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, itemdomain.NewStorageError("list items", err, isTransient(err))
	}
	items := make([]*models.Item, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	names, err := r.client.HMGet(ctx, r.hashKey(), ids...).Result()
	if err != nil {
		return nil, itemdomain.NewStorageError("list items", err, isTransient(err))
	}
	for i, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, itemdomain.NewStorageError("list items", fmt.Errorf("corrupt index member %q: %w", raw, err), false)
		}
		name, ok := names[i].(string)
		if !ok {
			return nil, itemdomain.NewStorageError("list items", fmt.Errorf("item %d indexed but missing", id), false)
		}
		items = append(items, &models.Item{ID: id, Name: models.ItemName(name)})
	}
	return items, nil
}

func (r *ItemRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return itemdomain.NewStorageError("ping", err, false)
	}
	return nil
}

// Close is a no-op: the client is owned by the application.
func (r *ItemRepository) Close() error { return nil }

// isTransient reports dial failures: the command was never written, so
// repeating it is safe.
func isTransient(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
