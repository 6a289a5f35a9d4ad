package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are exposed as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product in the catalog.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null;index"`
	Description *string         `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category    string          `json:"category" gorm:"type:varchar(32);not null;index"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TableName pins the table name regardless of naming strategy.
func (Product) TableName() string { return "products" }

// ToMap returns the JSON field view of the product, used for sparse fieldsets.
func (p Product) ToMap() map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
	}
}

// ProductDeleted is the payload published when a product is removed.
// Only the id survives the deletion.
type ProductDeleted struct {
	ID uint `json:"id"`
}
