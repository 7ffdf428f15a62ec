// Package persistence selects the item store implementation for the
// configured DB_DRIVER.
package persistence

import (
	"fmt"

	"github.com/ghuser/itemboard/pkg/app"
	"github.com/ghuser/itemboard/pkg/config"
	"github.com/ghuser/itemboard/services/item/domain/repositories"
	"github.com/ghuser/itemboard/services/item/infrastructure/persistence/memory"
	"github.com/ghuser/itemboard/services/item/infrastructure/persistence/mysql"
	"github.com/ghuser/itemboard/services/item/infrastructure/persistence/postgres"
	"github.com/ghuser/itemboard/services/item/infrastructure/persistence/redis"
	"github.com/ghuser/itemboard/services/item/infrastructure/persistence/sqlite"
)

// NewItemRepository returns the store backed by the handles in a.
func NewItemRepository(a *app.Application) (repositories.ItemRepository, error) {
	switch a.Config.DBDriver {
	case config.DriverPostgres:
		return postgres.NewItemRepository(a.Db, a.EventBus), nil
	case config.DriverMySQL:
		return mysql.NewItemRepository(a.Db), nil
	case config.DriverSQLite:
		return sqlite.NewItemRepository(a.Db), nil
	case config.DriverRedis:
		return redis.NewItemRepository(a.Redis), nil
	case config.DriverMemory:
		return memory.NewItemRepository(), nil
	default:
		return nil, fmt.Errorf("no item store for driver %q", a.Config.DBDriver)
	}
}
