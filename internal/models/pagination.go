package models

// Pagination is the metadata attached to every paginated result.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}

// NewPagination derives the pagination metadata for a page of a result set
// holding totalItems rows.
func NewPagination(page PageRequest, totalItems int64) Pagination {
	totalPages := 0
	if page.Limit > 0 {
		totalPages = int((totalItems + int64(page.Limit) - 1) / int64(page.Limit))
	}
	return Pagination{
		CurrentPage:  page.Page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: page.Limit,
		HasNext:      page.Page < totalPages,
		HasPrev:      page.Page > 1,
	}
}

// PaginatedResult is one page of T plus its metadata.
type PaginatedResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
