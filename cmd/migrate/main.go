package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ghuser/itemboard/migrations/item"
	"github.com/ghuser/itemboard/pkg/config"
	"github.com/ghuser/itemboard/pkg/database"
	"github.com/ghuser/itemboard/pkg/logger"
	"github.com/ghuser/itemboard/pkg/migrator"
)

func main() {
	status := flag.Bool("status", false, "print migration status instead of applying")
	flag.Parse()
	// config.Load parses os.Args as well and would reject -status.
	os.Args = os.Args[:1]

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	if err := run(context.Background(), cfg, log, *status); err != nil {
		log.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger, status bool) error {
	driver := cfg.SQLDriverName()
	if driver == "" {
		log.Info("store has no schema, nothing to migrate", "driver", cfg.DBDriver)
		return nil
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return err
	}
	db, err := database.NewPool(ctx, driver, dsn, log)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	files, err := item.FS(db.Driver())
	if err != nil {
		return err
	}

	if status {
		statuses, err := migrator.Status(ctx, db.DB(), db.Driver(), files)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Printf("%05d\t%s\t%s\n", s.Version, state, s.Path)
		}
		return nil
	}
	return migrator.RunMigrations(ctx, db.DB(), db.Driver(), files, log)
}
