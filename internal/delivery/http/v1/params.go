package v1

import (
	"net/http"

	"catalog-backend/internal/domain"
	"catalog-backend/pkg/utils"
)

// searchInput reads page, per_page, sort, sort_dir and filter from the query string.
// Unparsable numbers fall back to the defaults.
func searchInput(r *http.Request) domain.SearchInput {
	q := r.URL.Query()
	return domain.SearchInput{
		Page:    utils.ParseInt(q.Get("page"), 0),
		PerPage: utils.ParseInt(q.Get("per_page"), 0),
		Sort:    q.Get("sort"),
		SortDir: q.Get("sort_dir"),
		Filter:  q.Get("filter"),
	}
}
