// Package item embeds the goose migrations for the items table, one
// directory per SQL dialect.
package item

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed postgres/*.sql mysql/*.sql sqlite/*.sql
var files embed.FS

// FS returns the migrations for the given database/sql driver name.
func FS(driver string) (fs.FS, error) {
	var dir string
	switch driver {
	case "pgx":
		dir = "postgres"
	case "mysql":
		dir = "mysql"
	case "sqlite3":
		dir = "sqlite"
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
	return fs.Sub(files, dir)
}
