package dto

import (
	"strings"

	"catalog/internal/apperrors"
	"catalog/internal/models"

	"github.com/shopspring/decimal"
)

// CreateProductInput is the payload for creating a product. Price accepts a
// JSON number or a numeric string.
type CreateProductInput struct {
	Name        string           `json:"name" validate:"required,min=2,max=100,productname"`
	Description *string          `json:"description" validate:"omitnil,max=1000"`
	Price       *decimal.Decimal `json:"price" validate:"required,gt=0,lte=999999.99,money"`
	Category    string           `json:"category" validate:"required,category"`
}

// Normalize trims the text fields, lower-cases the category and turns an
// empty description into nil.
func (in *CreateProductInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = trimmed(in.Description)
	in.Category = models.NormalizeCategory(in.Category)
}

// ToModel builds the product to insert. Call after Normalize and Validate.
func (in CreateProductInput) ToModel() *models.Product {
	p := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	return p
}

// UpdateProductInput is a partial update. Nil fields are left untouched; an
// empty description clears it.
type UpdateProductInput struct {
	Name        *string          `json:"name" validate:"omitnil,min=2,max=100,productname"`
	Description *string          `json:"description" validate:"omitnil,max=1000"`
	Price       *decimal.Decimal `json:"price" validate:"omitnil,gt=0,lte=999999.99,money"`
	Category    *string          `json:"category" validate:"omitnil,category"`

	clearDescription bool
}

func (in *UpdateProductInput) Normalize() {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if in.Description != nil {
		in.Description = trimmed(in.Description)
		in.clearDescription = in.Description == nil
	}
	if in.Category != nil {
		category := models.NormalizeCategory(*in.Category)
		in.Category = &category
	}
}

// HasChanges reports whether at least one field is present.
func (in UpdateProductInput) HasChanges() bool {
	return in.Name != nil || in.Description != nil || in.clearDescription || in.Price != nil || in.Category != nil
}

// Apply copies the present fields onto p.
func (in UpdateProductInput) Apply(p *models.Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.clearDescription {
		p.Description = nil
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
}

// ProductListQuery is the raw query-string (or GraphQL argument) shape for
// listing products.
type ProductListQuery struct {
	Category  *string  `query:"category" json:"category" validate:"omitnil,category"`
	MinPrice  *float64 `query:"minPrice" json:"minPrice" validate:"omitnil,gte=0"`
	MaxPrice  *float64 `query:"maxPrice" json:"maxPrice" validate:"omitnil,gte=0"`
	Search    *string  `query:"search" json:"search" validate:"omitnil,max=100"`
	Name      *string  `query:"name" json:"name" validate:"omitnil,max=100"`
	SortBy    *string  `query:"sortBy" json:"sortBy" validate:"omitnil,oneof=name price createdAt updatedAt"`
	SortOrder *string  `query:"sortOrder" json:"sortOrder" validate:"omitnil,oneof=asc desc"`
	Page      *int     `query:"page" json:"page" validate:"omitnil,min=1"`
	Limit     *int     `query:"limit" json:"limit" validate:"omitnil,min=1,max=100"`
	Fields    *string  `query:"fields" json:"fields"`
}

func (q *ProductListQuery) Normalize() {
	q.Category = lowered(q.Category)
	q.Search = trimmed(q.Search)
	q.Name = trimmed(q.Name)
	q.SortBy = trimmed(q.SortBy)
	q.SortOrder = lowered(q.SortOrder)
	q.Fields = trimmed(q.Fields)
}

func (q ProductListQuery) crossFieldErrors() []apperrors.FieldError {
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return []apperrors.FieldError{{
			Field:      "minPrice",
			Message:    "minPrice must be less than or equal to maxPrice",
			Value:      *q.MinPrice,
			Constraint: "ltefield",
		}}
	}
	return nil
}
