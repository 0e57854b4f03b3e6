package recordstore

import (
	"context"
	"fmt"
)

// Open builds a store for the configured driver. DSN is the sqlite file
// path or the postgres connection URL; memory ignores it.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		if dsn == "" {
			dsn = "annexvii.db"
		}
		return OpenSQLite(ctx, dsn)
	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("postgres store requires a connection URL")
		}
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
