package database

import (
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
)

// Models lists every table owned by the application, in migration order.
func Models() []any {
	return []any{&models.Product{}, &models.User{}}
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}
