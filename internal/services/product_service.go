package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog/internal/apperrors"
	"catalog/internal/cache"
	"catalog/internal/dto"
	"catalog/internal/events"
	"catalog/internal/models"
	"catalog/internal/query"
	"catalog/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	base
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService. bus may be nil when no
// one listens for product events.
func NewProductService(repo repositories.ProductRepository, bus events.Bus, opts ...Option) *ProductService {
	return &ProductService{
		base: newBase("Product", bus, opts),
		repo: repo,
	}
}

// Create validates in, enforces the unique name rule and stores the product.
func (s *ProductService) Create(ctx context.Context, in dto.CreateProductInput) (*models.Product, error) {
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	product := in.ToModel()
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, s.fail(ctx, "create", nil, err)
	}

	s.forget(ctx, cache.CategoriesKey)
	s.publish(ctx, events.ProductCreated, snapshot(product))
	return product, nil
}

// Get returns a product by id.
func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if s.cached(ctx, cache.ProductKey(id), &product) {
		return &product, nil
	}

	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get", id, err)
	}
	s.remember(ctx, cache.ProductKey(id), found)
	return found, nil
}

// List returns one page of products matching the raw query parameters.
func (s *ProductService) List(ctx context.Context, raw dto.ProductListQuery) (*models.PaginatedResult[models.Product], error) {
	raw.Normalize()
	if err := dto.Validate(raw); err != nil {
		return nil, err
	}

	result, err := s.repo.FindWithFilters(ctx, query.BuildProductOptions(raw))
	if err != nil {
		return nil, s.fail(ctx, "list", nil, err)
	}
	return result, nil
}

// ListByCategory is List restricted to one category.
func (s *ProductService) ListByCategory(ctx context.Context, category string, raw dto.ProductListQuery) (*models.PaginatedResult[models.Product], error) {
	raw.Category = &category
	return s.List(ctx, raw)
}

// ListByPriceRange is List restricted to minPrice <= price <= maxPrice.
func (s *ProductService) ListByPriceRange(ctx context.Context, minPrice, maxPrice float64, raw dto.ProductListQuery) (*models.PaginatedResult[models.Product], error) {
	raw.MinPrice = &minPrice
	raw.MaxPrice = &maxPrice
	return s.List(ctx, raw)
}

// Update applies a partial update. At least one field must be present.
func (s *ProductService) Update(ctx context.Context, id uint, in dto.UpdateProductInput) (*models.Product, error) {
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !in.HasChanges() {
		return nil, noChanges()
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "update", id, err)
	}
	if in.Name != nil && !strings.EqualFold(*in.Name, product.Name) {
		if err := s.ensureNameFree(ctx, *in.Name, id); err != nil {
			return nil, err
		}
	}

	in.Apply(product)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, s.fail(ctx, "update", id, err)
	}

	s.forget(ctx, cache.ProductKey(id), cache.CategoriesKey)
	s.publish(ctx, events.ProductUpdated, snapshot(product))
	return product, nil
}

// Delete removes a product. Subscribers only receive its id.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete", id, err)
	}

	s.forget(ctx, cache.ProductKey(id), cache.CategoriesKey)
	s.publish(ctx, events.ProductDeleted, models.ProductDeleted{ID: id})
	return nil
}

// Search matches q against the given fields, or all searchable fields when
// none are given.
func (s *ProductService) Search(ctx context.Context, q string, fields []string) ([]models.Product, error) {
	term, err := searchTerm(q)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.Search(ctx, term, fields)
	if err != nil {
		return nil, s.fail(ctx, "search", nil, err)
	}
	return products, nil
}

// Categories returns the categories that currently have products.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if s.cached(ctx, cache.CategoriesKey, &categories) {
		return categories, nil
	}

	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, s.fail(ctx, "categories", nil, err)
	}
	s.remember(ctx, cache.CategoriesKey, categories)
	return categories, nil
}

// ensureNameFree fails with a duplicate error when another product already
// uses name. The check and the following write are not atomic.
func (s *ProductService) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return s.fail(ctx, "check name", nil, err)
	}
	if existing.ID == selfID {
		return nil
	}
	return apperrors.Duplicate("name", name, fmt.Sprintf("Product with name '%s' already exists", name))
}

func snapshot(p *models.Product) *models.Product {
	cp := *p
	return &cp
}
