package database

import (
	"github.com/kumar-97/kukkuta-Kendra/internal/common/config"

	"gorm.io/driver/mysql"
)

// MySQL implements the Database interface using MySQL
type MySQL struct {
	*store
	cfg *config.DatabaseConfig
}

// NewMySQL creates a new MySQL instance
func NewMySQL(cfg *config.DatabaseConfig) (Database, error) {
	gormDB, err := openGorm(mysql.Open(cfg.GetDSN()))
	if err != nil {
		return nil, err
	}

	s, err := newStore(gormDB)
	if err != nil {
		return nil, err
	}
	return &MySQL{store: s, cfg: cfg}, nil
}
