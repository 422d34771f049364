package search

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"catalog-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 11, 6, 12, 0, 0, 0, time.UTC)

func product(name string, offset time.Duration) domain.Product {
	return domain.Product{
		ID:        "id-" + name,
		Name:      name,
		Price:     10,
		Quantity:  1,
		CreatedAt: base.Add(offset),
		UpdatedAt: base.Add(offset),
	}
}

func names(items []domain.Product) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Name
	}
	return out
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		in      domain.SearchInput
		want    Plan
		wantErr error
	}{
		{
			name: "defaults",
			in:   domain.SearchInput{},
			want: Plan{Page: 1, PerPage: 15, Sort: "created_at", SortDir: "desc"},
		},
		{
			name: "valid sort asc",
			in:   domain.SearchInput{Page: 2, PerPage: 5, Sort: "name", SortDir: "asc", Filter: "x"},
			want: Plan{Page: 2, PerPage: 5, Sort: "name", SortDir: "asc", Filter: "x"},
		},
		{
			name: "asc is case-insensitive",
			in:   domain.SearchInput{Sort: "price", SortDir: "ASC"},
			want: Plan{Page: 1, PerPage: 15, Sort: "price", SortDir: "asc"},
		},
		{
			name: "invalid direction coerces to desc",
			in:   domain.SearchInput{Sort: "name", SortDir: "sideways"},
			want: Plan{Page: 1, PerPage: 15, Sort: "name", SortDir: "desc"},
		},
		{
			name: "unknown sort falls back and ignores direction",
			in:   domain.SearchInput{Sort: "unknown_field", SortDir: "asc"},
			want: Plan{Page: 1, PerPage: 15, Sort: "created_at", SortDir: "desc"},
		},
		{
			name:    "negative page",
			in:      domain.SearchInput{Page: -1},
			wantErr: domain.ErrBadRequest,
		},
		{
			name:    "negative per_page",
			in:      domain.SearchInput{PerPage: -3},
			wantErr: domain.ErrBadRequest,
		},
		{
			name: "per_page at the cap",
			in:   domain.SearchInput{PerPage: domain.MaxPerPage},
			want: Plan{Page: 1, PerPage: domain.MaxPerPage, Sort: "created_at", SortDir: "desc"},
		},
		{
			name:    "per_page above the cap",
			in:      domain.SearchInput{Page: 5, PerPage: 1 << 62},
			wantErr: domain.ErrBadRequest,
		},
		{
			name:    "offset overflows",
			in:      domain.SearchInput{Page: math.MaxInt, PerPage: domain.MaxPerPage},
			wantErr: domain.ErrBadRequest,
		},
		{
			name: "largest page whose offset fits",
			in:   domain.SearchInput{Page: math.MaxInt/domain.MaxPerPage + 1, PerPage: domain.MaxPerPage},
			want: Plan{Page: math.MaxInt/domain.MaxPerPage + 1, PerPage: domain.MaxPerPage, Sort: "created_at", SortDir: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Products.Resolve(tt.in)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_Filter(t *testing.T) {
	items := []domain.Product{
		product("a", 0), product("AA", time.Second), product("Aa", 2 * time.Second),
		product("b", 3 * time.Second), product("c", 4 * time.Second),
	}

	out, err := Products.Apply(items, domain.SearchInput{Filter: "a", Sort: "name", SortDir: "asc"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "AA", "Aa"}, names(out.Items))
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, "a", out.Filter)

	out, err = Products.Apply(items, domain.SearchInput{Filter: "no-match"})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.NotNil(t, out.Items)
	assert.Equal(t, 0, out.Total)
}

func TestApply_FilterKeepsOrderAndInput(t *testing.T) {
	items := []domain.Product{product("Test", 0), product("fake", time.Second), product("TEST", 2 * time.Second)}
	before := names(items)

	filtered := Products.filter(items, "test")
	assert.Equal(t, []string{"Test", "TEST"}, names(filtered))
	assert.Equal(t, before, names(items))
}

func TestApply_Sort(t *testing.T) {
	items := []domain.Product{product("c", 0), product("a", time.Second), product("b", 2 * time.Second)}

	out, err := Products.Apply(items, domain.SearchInput{Sort: "name", SortDir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names(out.Items))

	out, err = Products.Apply(items, domain.SearchInput{Sort: "name", SortDir: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, names(out.Items))

	out, err = Products.Apply(items, domain.SearchInput{Sort: "bogus", SortDir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, names(out.Items), "newest first")
	assert.Equal(t, "created_at", out.Sort)
	assert.Equal(t, "desc", out.SortDir)
}

func TestApply_SortIsStable(t *testing.T) {
	items := []domain.Product{product("x1", 0), product("x2", time.Second), product("x3", 2 * time.Second)}
	for i := range items {
		items[i].Price = 5
	}

	for _, dir := range []string{"asc", "desc"} {
		out, err := Products.Apply(items, domain.SearchInput{Sort: "price", SortDir: dir})
		require.NoError(t, err)
		assert.Equal(t, []string{"x1", "x2", "x3"}, names(out.Items), dir)
	}
}

func TestApply_SortNumeric(t *testing.T) {
	items := []domain.Product{product("p", 0), product("q", time.Second), product("r", 2 * time.Second)}
	items[0].Quantity, items[1].Quantity, items[2].Quantity = 10, 2, 30

	out, err := Products.Apply(items, domain.SearchInput{Sort: "quantity", SortDir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"q", "p", "r"}, names(out.Items))
}

func TestApply_Paginate(t *testing.T) {
	var items []domain.Product
	for i := 0; i < 16; i++ {
		items = append(items, product(fmt.Sprintf("p%02d", i), time.Duration(i)*time.Second))
	}

	out, err := Products.Apply(items, domain.SearchInput{Page: 1, PerPage: 15, Sort: "unknown_field"})
	require.NoError(t, err)
	require.Len(t, out.Items, 15)
	assert.Equal(t, 16, out.Total)
	assert.Equal(t, "p15", out.Items[0].Name)
	assert.Equal(t, "p01", out.Items[14].Name)
	for i := 1; i < len(out.Items); i++ {
		assert.True(t, out.Items[i-1].CreatedAt.After(out.Items[i].CreatedAt))
	}

	out, err = Products.Apply(items, domain.SearchInput{Page: 2, PerPage: 15})
	require.NoError(t, err)
	assert.Equal(t, []string{"p00"}, names(out.Items))

	out, err = Products.Apply(items, domain.SearchInput{Page: 9, PerPage: 15})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, 16, out.Total)
	assert.Equal(t, 9, out.CurrentPage)
}

func TestPaginate_Bounds(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	for page := 1; page <= 4; page++ {
		for perPage := 1; perPage <= 6; perPage++ {
			got := Paginate(items, page, perPage)
			assert.LessOrEqual(t, len(got), perPage)
			if page == 1 && len(items) <= perPage {
				assert.Len(t, got, len(items))
			}
		}
	}
	assert.Equal(t, []int{3, 4}, Paginate(items, 2, 2))
	assert.Equal(t, []int{5}, Paginate(items, 3, 2))
	assert.Empty(t, Paginate(items, 4, 2))
	assert.Empty(t, Paginate(items, math.MaxInt, math.MaxInt))
	assert.Empty(t, Paginate(items, 5, 1<<62))
	assert.Empty(t, Paginate([]int{}, 1, 15))
}

func TestUsersSchema(t *testing.T) {
	users := []domain.User{
		{Name: "Maria", Email: "z@example.com", CreatedAt: base},
		{Name: "mario", Email: "a@example.com", CreatedAt: base.Add(time.Second)},
		{Name: "John", Email: "m@example.com", CreatedAt: base.Add(2 * time.Second)},
	}

	out, err := Users.Apply(users, domain.SearchInput{Filter: "MAR", Sort: "email", SortDir: "asc"})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "mario", out.Items[0].Name)
	assert.Equal(t, "Maria", out.Items[1].Name)
}
