package database

import (
	"github.com/kumar-97/kukkuta-Kendra/internal/common/config"

	"gorm.io/driver/postgres"
)

// Postgres implements the Database interface using PostgreSQL
type Postgres struct {
	*store
	cfg *config.DatabaseConfig
}

// NewPostgres creates a new Postgres instance
func NewPostgres(cfg *config.DatabaseConfig) (Database, error) {
	gormDB, err := openGorm(postgres.Open(cfg.GetDSN()))
	if err != nil {
		return nil, err
	}

	s, err := newStore(gormDB)
	if err != nil {
		return nil, err
	}
	return &Postgres{store: s, cfg: cfg}, nil
}
