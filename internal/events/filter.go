package events

import (
	"strings"

	"catalog/internal/models"
)

// ProductFilter narrows productCreated and productUpdated streams. Empty
// fields match everything.
type ProductFilter struct {
	Categories []string
	MinPrice   *float64
	MaxPrice   *float64
}

// Matches reports whether p passes the filter.
func (f ProductFilter) Matches(p *models.Product) bool {
	if p == nil {
		return false
	}
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if strings.EqualFold(strings.TrimSpace(c), p.Category) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	price := p.Price.InexactFloat64()
	if f.MinPrice != nil && price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && price > *f.MaxPrice {
		return false
	}
	return true
}

// UserFilter narrows userCreated and userUpdated streams. An empty
// EmailContains matches everything.
type UserFilter struct {
	EmailContains string
}

// Matches reports whether u passes the filter. The email match ignores case.
func (f UserFilter) Matches(u *models.User) bool {
	if u == nil {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(f.EmailContains))
	return needle == "" || strings.Contains(strings.ToLower(u.Email), needle)
}

// DeleteFilter is accepted on delete subscriptions for API compatibility.
// UserID is not checked; every delete event passes.
type DeleteFilter struct {
	UserID *string
}

func (DeleteFilter) Matches(any) bool { return true }
