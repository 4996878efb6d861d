package database

import (
	"github.com/kumar-97/kukkuta-Kendra/internal/common/config"

	"github.com/glebarez/sqlite"
)

// SQLite implements the Database interface using SQLite
type SQLite struct {
	*store
	cfg *config.DatabaseConfig
}

// NewSQLite creates a new SQLite instance
func NewSQLite(cfg *config.DatabaseConfig) (Database, error) {
	gormDB, err := openGorm(sqlite.Open(cfg.GetDSN()))
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer; one connection also keeps an
	// in-memory database alive for the lifetime of the pool.
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	s, err := newStore(gormDB)
	if err != nil {
		return nil, err
	}
	return &SQLite{store: s, cfg: cfg}, nil
}
