package search

import "catalog-backend/internal/domain"

// LastPage is ceil(total / perPage); zero when there is nothing to show.
func LastPage(total, perPage int) int {
	if perPage < 1 || total <= 0 {
		return 0
	}
	return (total-1)/perPage + 1
}

// ToPage maps a search result to the page returned to API consumers.
func ToPage[T any](out domain.SearchOutput[T]) domain.Page[T] {
	items := out.Items
	if items == nil {
		items = []T{}
	}
	return domain.Page[T]{
		Items:       items,
		Total:       out.Total,
		CurrentPage: out.CurrentPage,
		PerPage:     out.PerPage,
		LastPage:    LastPage(out.Total, out.PerPage),
	}
}
