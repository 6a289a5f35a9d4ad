package database

import (
	"fmt"
	"log/slog"

	"catalog/internal/config"

	"gorm.io/gorm"
)

// OpenMemory opens a private, migrated in-memory SQLite database. The pool
// is pinned to one connection so the database lives as long as db does.
func OpenMemory(name string, logger *slog.Logger) (*gorm.DB, error) {
	db, err := Open(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, logger)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
