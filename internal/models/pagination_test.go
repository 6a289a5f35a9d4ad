package models_test

import (
	"testing"

	"catalog/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name      string
		page      models.PageRequest
		total     int64
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{"empty set", models.PageRequest{Page: 1, Limit: 10}, 0, 0, false, false},
		{"single partial page", models.PageRequest{Page: 1, Limit: 10}, 3, 1, false, false},
		{"exact multiple", models.PageRequest{Page: 1, Limit: 5}, 10, 2, true, false},
		{"middle page", models.PageRequest{Page: 2, Limit: 1}, 3, 3, true, true},
		{"last page", models.PageRequest{Page: 3, Limit: 1}, 3, 3, false, true},
		{"beyond last page", models.PageRequest{Page: 9, Limit: 10}, 15, 2, false, true},
		{"max limit", models.PageRequest{Page: 1, Limit: 100}, 101, 2, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.NewPagination(tt.page, tt.total)
			assert.Equal(t, tt.page.Page, p.CurrentPage)
			assert.Equal(t, tt.page.Limit, p.ItemsPerPage)
			assert.Equal(t, tt.total, p.TotalItems)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.wantPrev, p.HasPrev)
		})
	}
}

func TestNewPagination_Invariants(t *testing.T) {
	for limit := 1; limit <= 100; limit += 11 {
		for total := int64(0); total <= 250; total += 37 {
			for page := 1; page <= 4; page++ {
				p := models.NewPagination(models.PageRequest{Page: page, Limit: limit}, total)
				wantPages := int((total + int64(limit) - 1) / int64(limit))
				assert.Equal(t, wantPages, p.TotalPages)
				assert.Equal(t, p.CurrentPage < p.TotalPages, p.HasNext)
				assert.Equal(t, p.CurrentPage > 1, p.HasPrev)
			}
		}
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, models.PageRequest{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, models.PageRequest{Page: 3, Limit: 10}.Offset())
}

func TestCategories(t *testing.T) {
	assert.Len(t, models.Categories, 11)
	assert.Equal(t, "electronics", models.NormalizeCategory("  ELECTRONICS "))
	assert.True(t, models.IsValidCategory("books"))
	assert.False(t, models.IsValidCategory("Books"))
	assert.False(t, models.IsValidCategory("weapons"))
}
