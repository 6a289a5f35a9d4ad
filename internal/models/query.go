package models

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOption is an explicit sort requested by the caller. Field is the API
// field name (e.g. "createdAt"); repositories map it to a column.
type SortOption struct {
	Field string
	Order SortOrder
}

// PageRequest is a resolved page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ProductFilters holds the optional product filters. A nil field means "not filtered".
type ProductFilters struct {
	Category *string
	MinPrice *float64
	MaxPrice *float64
	Search   *string
	Name     *string
}

// ProductQueryOptions is the normalized shape consumed by ProductRepository.FindWithFilters.
type ProductQueryOptions struct {
	Filters    ProductFilters
	Sort       *SortOption
	Pagination PageRequest
	Fields     []string
}

// UserFilters holds the optional user filters.
type UserFilters struct {
	Email  *string
	Search *string
}

// UserQueryOptions is the normalized shape consumed by UserRepository.FindWithFilters.
type UserQueryOptions struct {
	Filters    UserFilters
	Sort       *SortOption
	Pagination PageRequest
	Fields     []string
}
