package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"catalog/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// SeedProducts is the sample catalog inserted by Seed.
var SeedProducts = []models.Product{
	{Name: "Laptop", Description: strPtr("High performance laptop"), Price: decimal.RequireFromString("1200.00"), Category: string(models.CategoryElectronics)},
	{Name: "Mechanical Keyboard", Description: strPtr("Tactile switches, full size"), Price: decimal.RequireFromString("75.00"), Category: string(models.CategoryElectronics)},
	{Name: "Wireless Mouse", Description: strPtr("Ergonomic wireless mouse"), Price: decimal.RequireFromString("25.00"), Category: string(models.CategoryElectronics)},
	{Name: "Running Shoes", Price: decimal.RequireFromString("89.90"), Category: string(models.CategorySports)},
	{Name: "Go in Action", Description: strPtr("Practical Go programming"), Price: decimal.RequireFromString("39.99"), Category: string(models.CategoryBooks)},
	{Name: "Coffee Beans", Description: strPtr("Single origin, 1kg"), Price: decimal.RequireFromString("18.50"), Category: string(models.CategoryFood)},
}

// Seed inserts the sample products whose names are not taken yet and
// returns how many rows were created. Running it twice is harmless.
func Seed(ctx context.Context, db *gorm.DB, logger *slog.Logger) (int, error) {
	created := 0
	for _, p := range SeedProducts {
		var count int64
		err := db.WithContext(ctx).Model(&models.Product{}).
			Where("LOWER(name) = ?", strings.ToLower(p.Name)).
			Count(&count).Error
		if err != nil {
			return created, fmt.Errorf("failed to check product %q: %w", p.Name, err)
		}
		if count > 0 {
			logger.Debug("seed product exists", "name", p.Name)
			continue
		}

		product := p
		if err := db.WithContext(ctx).Create(&product).Error; err != nil {
			return created, fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
		logger.Info("seeded product", "name", product.Name, "id", product.ID)
		created++
	}
	return created, nil
}
