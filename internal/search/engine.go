// Package search resolves SearchInput against a per-entity Schema and runs
// filter, sort and paginate either in process or as a translated query plan.
package search

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"catalog-backend/internal/domain"
)

// Field is one sortable field of T.
type Field[T any] struct {
	// Column is the relational column backing the field.
	Column string
	// Text marks string columns, which the relational backend orders bytewise.
	Text bool
	// Compare is a three-way comparison on the field's natural type.
	Compare func(a, b T) int
}

// Schema describes how entities of type T are searched.
type Schema[T any] struct {
	// Fields is the sort allow-list, keyed by the name callers use.
	Fields map[string]Field[T]
	// FilterColumn and FilterValue designate the field matched by Filter.
	FilterColumn string
	FilterValue  func(T) string
}

// Plan is a resolved SearchInput: defaults applied, sort validated.
type Plan struct {
	Page    int
	PerPage int
	Sort    string
	SortDir string
	Filter  string
}

func (p Plan) Offset() int { return (p.Page - 1) * p.PerPage }

func (p Plan) Limit() int { return p.PerPage }

func (p Plan) Ascending() bool { return p.SortDir == domain.SortAsc }

// Resolve applies defaults and the sort fallback policy to in.
// An unknown or empty sort falls back to created_at desc; with a known sort any
// direction other than "asc" (case-insensitive) means desc.
func (s Schema[T]) Resolve(in domain.SearchInput) (Plan, error) {
	if in.Page < 0 {
		return Plan{}, fmt.Errorf("%w: page must be positive", domain.ErrBadRequest)
	}
	if in.PerPage < 0 {
		return Plan{}, fmt.Errorf("%w: per_page must be positive", domain.ErrBadRequest)
	}
	if in.PerPage > domain.MaxPerPage {
		return Plan{}, fmt.Errorf("%w: per_page must be at most %d", domain.ErrBadRequest, domain.MaxPerPage)
	}

	p := Plan{
		Page:    in.Page,
		PerPage: in.PerPage,
		Sort:    domain.SortCreatedAt,
		SortDir: domain.SortDesc,
		Filter:  in.Filter,
	}
	if p.Page == 0 {
		p.Page = domain.DefaultPage
	}
	if p.PerPage == 0 {
		p.PerPage = domain.DefaultPerPage
	}
	// Offset must fit in an int.
	if p.Page-1 > math.MaxInt/p.PerPage {
		return Plan{}, fmt.Errorf("%w: page %d is out of range", domain.ErrBadRequest, p.Page)
	}

	if _, ok := s.Fields[in.Sort]; ok && in.Sort != "" {
		p.Sort = in.Sort
		if strings.EqualFold(in.SortDir, domain.SortAsc) {
			p.SortDir = domain.SortAsc
		}
	}
	return p, nil
}

// Column returns the relational column for the plan's sort field.
func (s Schema[T]) Column(p Plan) (Field[T], error) {
	f, ok := s.Fields[p.Sort]
	if !ok {
		return Field[T]{}, fmt.Errorf("sort field %q is not in the schema", p.Sort)
	}
	return f, nil
}

// Apply runs filter, sort and paginate over items in process. items is not modified.
func (s Schema[T]) Apply(items []T, in domain.SearchInput) (domain.SearchOutput[T], error) {
	p, err := s.Resolve(in)
	if err != nil {
		return domain.SearchOutput[T]{}, err
	}

	filtered := s.filter(items, p.Filter)
	if err := s.sort(filtered, p); err != nil {
		return domain.SearchOutput[T]{}, err
	}
	return Output(p, Paginate(filtered, p.Page, p.PerPage), len(filtered)), nil
}

func (s Schema[T]) filter(items []T, filter string) []T {
	if filter == "" {
		return slices.Clone(items)
	}
	needle := strings.ToLower(filter)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(s.FilterValue(it)), needle) {
			out = append(out, it)
		}
	}
	return out
}

func (s Schema[T]) sort(items []T, p Plan) error {
	f, err := s.Column(p)
	if err != nil {
		return err
	}
	cmp := f.Compare
	if !p.Ascending() {
		cmp = func(a, b T) int { return f.Compare(b, a) }
	}
	slices.SortStableFunc(items, cmp)
	return nil
}

// Paginate returns the half-open window [(page-1)*perPage, page*perPage) of
// items, clamped to its length. Pages past the end are empty.
func Paginate[T any](items []T, page, perPage int) []T {
	if page < 1 || perPage < 1 || page > LastPage(len(items), perPage) {
		return []T{}
	}
	start := (page - 1) * perPage
	end := min(start+perPage, len(items))
	return slices.Clone(items[start:end])
}

// Output assembles a SearchOutput for a plan.
func Output[T any](p Plan, items []T, total int) domain.SearchOutput[T] {
	if items == nil {
		items = []T{}
	}
	return domain.SearchOutput[T]{
		Items:       items,
		Total:       total,
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		Sort:        p.Sort,
		SortDir:     p.SortDir,
		Filter:      p.Filter,
	}
}
