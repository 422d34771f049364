package search

import (
	"cmp"
	"strings"

	"catalog-backend/internal/domain"
)

// Products is the search schema for domain.Product. Filter matches name.
var Products = Schema[domain.Product]{
	Fields: map[string]Field[domain.Product]{
		"name": {Column: "name", Text: true, Compare: func(a, b domain.Product) int {
			return strings.Compare(a.Name, b.Name)
		}},
		"price": {Column: "price", Compare: func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		}},
		"quantity": {Column: "quantity", Compare: func(a, b domain.Product) int {
			return cmp.Compare(a.Quantity, b.Quantity)
		}},
		domain.SortCreatedAt: {Column: "created_at", Compare: func(a, b domain.Product) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}},
	},
	FilterColumn: "name",
	FilterValue:  func(p domain.Product) string { return p.Name },
}

// Users is the search schema for domain.User. Filter matches name.
var Users = Schema[domain.User]{
	Fields: map[string]Field[domain.User]{
		"name": {Column: "name", Text: true, Compare: func(a, b domain.User) int {
			return strings.Compare(a.Name, b.Name)
		}},
		"email": {Column: "email", Text: true, Compare: func(a, b domain.User) int {
			return strings.Compare(a.Email, b.Email)
		}},
		domain.SortCreatedAt: {Column: "created_at", Compare: func(a, b domain.User) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}},
	},
	FilterColumn: "name",
	FilterValue:  func(u domain.User) string { return u.Name },
}
