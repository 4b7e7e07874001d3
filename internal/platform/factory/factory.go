// Package factory constructs the configured storage driver.
package factory

import (
	"fmt"

	"github.com/tokenagents/character-registry/internal/config"
	"github.com/tokenagents/character-registry/internal/store"
	"github.com/tokenagents/character-registry/internal/store/postgres"
	"github.com/tokenagents/character-registry/internal/store/sqlite"
)

// NewStore opens the store selected by cfg.DBDriver. Schema creation
// happens here; an error means the store is unusable and the process
// should fail fast.
func NewStore(cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return sqlite.New(cfg.SQLiteDBFile)
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return postgres.NewWithDB(db)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}
