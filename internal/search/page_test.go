package search

import (
	"math"
	"testing"

	"catalog-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestLastPage(t *testing.T) {
	for total := 0; total <= 50; total++ {
		for perPage := 1; perPage <= 20; perPage++ {
			want := total / perPage
			if total%perPage != 0 {
				want++
			}
			assert.Equal(t, want, LastPage(total, perPage), "total=%d per_page=%d", total, perPage)
		}
	}
	assert.Equal(t, 0, LastPage(10, 0))
	assert.Equal(t, 1, LastPage(5, math.MaxInt))
	assert.Equal(t, math.MaxInt, LastPage(math.MaxInt, 1))
}

func TestToPage(t *testing.T) {
	out := domain.SearchOutput[string]{
		Items:       []string{"a", "b"},
		Total:       16,
		CurrentPage: 2,
		PerPage:     15,
		Sort:        "name",
		SortDir:     "asc",
		Filter:      "x",
	}

	page := ToPage(out)
	assert.Equal(t, domain.Page[string]{
		Items:       []string{"a", "b"},
		Total:       16,
		CurrentPage: 2,
		PerPage:     15,
		LastPage:    2,
	}, page)

	empty := ToPage(domain.SearchOutput[string]{PerPage: 15})
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.LastPage)
}
