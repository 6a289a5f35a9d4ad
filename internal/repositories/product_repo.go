package repositories

import (
	"context"
	"errors"

	"catalog/internal/models"
)

// ErrNotFound is returned (wrapped) when a row does not exist.
var ErrNotFound = errors.New("record not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	FindByName(ctx context.Context, name string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error

	// FindWithFilters returns one page of products matching opts.
	FindWithFilters(ctx context.Context, opts models.ProductQueryOptions) (*models.PaginatedResult[models.Product], error)
	// Search matches query against the given searchable fields. Unknown
	// fields are ignored.
	Search(ctx context.Context, query string, fields []string) ([]models.Product, error)
	CountTotal(ctx context.Context, filters models.ProductFilters) (int64, error)
	Categories(ctx context.Context) ([]string, error)
}
