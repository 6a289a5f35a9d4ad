// Package query turns raw list parameters into the normalized option
// structures consumed by the repositories. Values are assumed to have passed
// dto validation already; nothing here returns an error.
package query

import (
	"strings"

	"catalog/internal/dto"
	"catalog/internal/models"
)

// BuildProductOptions maps a raw product list query onto ProductQueryOptions.
// Only present values become filters.
func BuildProductOptions(raw dto.ProductListQuery) models.ProductQueryOptions {
	opts := models.ProductQueryOptions{
		Pagination: Page(raw.Page, raw.Limit),
		Sort:       sortOption(raw.SortBy, raw.SortOrder),
		Fields:     Fields(raw.Fields),
	}

	if raw.Category != nil {
		opts.Filters.Category = raw.Category
	}
	if raw.MinPrice != nil {
		opts.Filters.MinPrice = raw.MinPrice
	}
	if raw.MaxPrice != nil {
		opts.Filters.MaxPrice = raw.MaxPrice
	}
	if raw.Search != nil {
		opts.Filters.Search = raw.Search
	}
	if raw.Name != nil {
		opts.Filters.Name = raw.Name
	}

	return opts
}

// BuildUserOptions maps a raw user list query onto UserQueryOptions.
func BuildUserOptions(raw dto.UserListQuery) models.UserQueryOptions {
	opts := models.UserQueryOptions{
		Pagination: Page(raw.Page, raw.Limit),
		Sort:       sortOption(raw.SortBy, raw.SortOrder),
		Fields:     Fields(raw.Fields),
	}
	if raw.Email != nil {
		opts.Filters.Email = raw.Email
	}
	if raw.Search != nil {
		opts.Filters.Search = raw.Search
	}
	return opts
}

// Page resolves optional page/limit values to a concrete request: page
// defaults to 1, limit defaults to 10 and is capped at 100.
func Page(page, limit *int) models.PageRequest {
	p := models.PageRequest{Page: models.DefaultPage, Limit: models.DefaultLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, models.MaxLimit)
	}
	return p
}

// Fields splits a comma separated sparse fieldset, dropping blanks and duplicates.
func Fields(raw *string) []string {
	if raw == nil {
		return nil
	}
	var fields []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(*raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		fields = append(fields, f)
	}
	return fields
}

func sortOption(sortBy, sortOrder *string) *models.SortOption {
	if sortBy == nil {
		return nil
	}
	order := models.SortAsc
	if sortOrder != nil && strings.EqualFold(*sortOrder, string(models.SortDesc)) {
		order = models.SortDesc
	}
	return &models.SortOption{Field: *sortBy, Order: order}
}
