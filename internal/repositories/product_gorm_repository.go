package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog/internal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	productSortColumns = map[string]string{
		"name":      "name",
		"price":     "price",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
	productSearchColumns = map[string]string{
		"name":        "name",
		"description": "description",
		"category":    "category",
	}
	defaultProductSearchColumns = []string{"name", "description", "category"}
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// FindByName looks a product up by name, ignoring case.
func (r *GORMProductRepository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product named %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by name %q: %w", name, err)
	}
	return &product, nil
}

// Update writes the mutable fields of product.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(product).
		Select("name", "description", "price", "category").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// FindWithFilters runs the page fetch and the total count concurrently with
// the same predicate. The two reads are not taken from one snapshot.
func (r *GORMProductRepository) FindWithFilters(ctx context.Context, opts models.ProductQueryOptions) (*models.PaginatedResult[models.Product], error) {
	var (
		products []models.Product
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).
			Model(&models.Product{}).
			Scopes(
				productFilters(opts.Filters),
				orderBy(opts.Sort, productSortColumns, "created_at", true),
				paginate(opts.Pagination),
			).
			Find(&products).Error
	})
	g.Go(func() error {
		var err error
		total, err = r.CountTotal(gctx, opts.Filters)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	if products == nil {
		products = []models.Product{}
	}
	return &models.PaginatedResult[models.Product]{
		Data:       products,
		Pagination: models.NewPagination(opts.Pagination, total),
	}, nil
}

// Search ORs a case-insensitive substring match over the requested fields.
// When fields were requested but none is searchable, the database is not queried.
func (r *GORMProductRepository) Search(ctx context.Context, query string, fields []string) ([]models.Product, error) {
	columns := searchColumns(fields, productSearchColumns, defaultProductSearchColumns)
	if len(columns) == 0 {
		return []models.Product{}, nil
	}

	cond, args := containsAny(columns, query)
	products := []models.Product{}
	err := r.db.WithContext(ctx).
		Where(cond, args...).
		Scopes(orderBy(nil, productSortColumns, "created_at", true)).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// CountTotal counts the products matching filters.
func (r *GORMProductRepository) CountTotal(ctx context.Context, filters models.ProductFilters) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(productFilters(filters)).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// Categories returns the distinct categories currently in use.
func (r *GORMProductRepository) Categories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// productFilters ANDs together every present filter.
func productFilters(f models.ProductFilters) scope {
	return func(db *gorm.DB) *gorm.DB {
		if f.Category != nil {
			db = db.Where("category = ?", *f.Category)
		}
		if f.MinPrice != nil {
			db = db.Where("price >= ?", *f.MinPrice)
		}
		if f.MaxPrice != nil {
			db = db.Where("price <= ?", *f.MaxPrice)
		}
		if f.Search != nil {
			cond, args := containsAny(defaultProductSearchColumns, *f.Search)
			db = db.Where(cond, args...)
		}
		if f.Name != nil {
			cond, args := containsAny([]string{"name"}, *f.Name)
			db = db.Where(cond, args...)
		}
		return db
	}
}
