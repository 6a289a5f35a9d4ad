package models

import "strings"

// Category is one of the fixed product categories.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryBooks       Category = "books"
	CategoryHome        Category = "home"
	CategorySports      Category = "sports"
	CategoryToys        Category = "toys"
	CategoryBeauty      Category = "beauty"
	CategoryAutomotive  Category = "automotive"
	CategoryFood        Category = "food"
	CategoryHealth      Category = "health"
	CategoryOther       Category = "other"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryBooks,
	CategoryHome,
	CategorySports,
	CategoryToys,
	CategoryBeauty,
	CategoryAutomotive,
	CategoryFood,
	CategoryHealth,
	CategoryOther,
}

// NormalizeCategory trims and lower-cases a raw category value.
func NormalizeCategory(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsValidCategory reports whether the already normalized value is a known category.
func IsValidCategory(value string) bool {
	for _, c := range Categories {
		if string(c) == value {
			return true
		}
	}
	return false
}

// CategoryNames returns the categories as plain strings.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}
