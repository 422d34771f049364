// Package repotest holds the behavior every repository backend must share.
// Backend packages run the suites from their own tests.
package repotest

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"catalog-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Epoch is the creation time suites give records whose order matters.
var Epoch = time.Date(2024, 11, 6, 12, 0, 0, 0, time.UTC)

// NewProduct builds a product created offset after Epoch.
func NewProduct(name string, price float64, quantity int, offset time.Duration) *domain.Product {
	ts := Epoch.Add(offset)
	return &domain.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func productNames(items []domain.Product) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Name
	}
	return out
}

func assertSameProduct(t *testing.T, want, got *domain.Product) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.InDelta(t, want.Price, got.Price, 0.001)
	assert.Equal(t, want.Quantity, got.Quantity)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at %s != %s", want.CreatedAt, got.CreatedAt)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updated_at %s != %s", want.UpdatedAt, got.UpdatedAt)
}

func insertProducts(t *testing.T, repo domain.ProductRepository, items ...*domain.Product) {
	t.Helper()
	for _, p := range items {
		_, err := repo.Insert(context.Background(), p)
		require.NoError(t, err)
	}
}

// RunProductSuite checks repo against the product repository contract.
// newRepo must return an empty repository on every call.
func RunProductSuite(t *testing.T, newRepo func(t *testing.T) domain.ProductRepository) {
	ctx := context.Background()

	t.Run("create builds an unsaved product", func(t *testing.T) {
		repo := newRepo(t)
		a := repo.Create(domain.CreateProductInput{Name: "Lamp", Price: 19.999, Quantity: 3})
		b := repo.Create(domain.CreateProductInput{Name: "Lamp", Price: 19.999, Quantity: 3})

		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, 20.0, a.Price)
		assert.True(t, a.CreatedAt.Equal(a.UpdatedAt))

		_, err := repo.FindByID(ctx, a.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("insert then find", func(t *testing.T) {
		repo := newRepo(t)
		p := repo.Create(domain.CreateProductInput{Name: "Desk", Price: 120.5, Quantity: 2})

		saved, err := repo.Insert(ctx, p)
		require.NoError(t, err)
		assertSameProduct(t, p, saved)

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assertSameProduct(t, p, found)
	})

	t.Run("insert duplicate id conflicts", func(t *testing.T) {
		repo := newRepo(t)
		p := NewProduct("Chair", 10, 1, 0)
		insertProducts(t, repo, p)

		dup := *p
		dup.Name = "Other chair"
		_, err := repo.Insert(ctx, &dup)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("insert duplicate name conflicts", func(t *testing.T) {
		repo := newRepo(t)
		insertProducts(t, repo, NewProduct("Chair", 10, 1, 0))

		_, err := repo.Insert(ctx, NewProduct("Chair", 20, 2, time.Second))
		assert.ErrorIs(t, err, domain.ErrConflict)

		out, err := repo.Search(ctx, domain.SearchInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Total)
	})

	t.Run("insert rejects a non-uuid id", func(t *testing.T) {
		repo := newRepo(t)
		p := NewProduct("Chair", 10, 1, 0)
		p.ID = "fake-id"
		_, err := repo.Insert(ctx, p)
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	})

	t.Run("ids resolve in any uuid form", func(t *testing.T) {
		repo := newRepo(t)
		p := NewProduct("Lamp", 10, 1, 0)
		p.ID = strings.ToUpper(p.ID)
		saved, err := repo.Insert(ctx, p)
		require.NoError(t, err)
		id := saved.ID
		assert.Equal(t, strings.ToLower(p.ID), id)

		for _, form := range []string{id, strings.ToUpper(id), "{" + id + "}", "urn:uuid:" + id} {
			found, err := repo.FindByID(ctx, form)
			require.NoError(t, err, form)
			assert.Equal(t, id, found.ID, form)
		}

		list, err := repo.FindAllByIDs(ctx, []string{strings.ToUpper(id), id})
		require.NoError(t, err)
		assert.Equal(t, []string{"Lamp"}, productNames(list))

		change := *saved
		change.ID = strings.ToUpper(id)
		change.Quantity = 9
		updated, err := repo.Update(ctx, &change)
		require.NoError(t, err)
		assert.Equal(t, id, updated.ID)
		assert.Equal(t, 9, updated.Quantity)

		require.NoError(t, repo.Delete(ctx, "{"+id+"}"))
		_, err = repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("find unknown id", func(t *testing.T) {
		repo := newRepo(t)
		for _, id := range []string{uuid.NewString(), "fake-id", ""} {
			_, err := repo.FindByID(ctx, id)
			assert.ErrorIs(t, err, domain.ErrNotFound, id)
		}
	})

	t.Run("update keeps created_at", func(t *testing.T) {
		repo := newRepo(t)
		p := NewProduct("Sofa", 300, 1, 0)
		insertProducts(t, repo, p)

		change := *p
		change.Name = "Sofa bed"
		change.Price = 350.25
		change.Quantity = 4
		change.CreatedAt = time.Now()

		updated, err := repo.Update(ctx, &change)
		require.NoError(t, err)
		assert.Equal(t, "Sofa bed", updated.Name)
		assert.True(t, p.CreatedAt.Equal(updated.CreatedAt))
		assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assertSameProduct(t, updated, found)
	})

	t.Run("update unknown id", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Update(ctx, NewProduct("Ghost", 1, 1, 0))
		assert.ErrorIs(t, err, domain.ErrNotFound)

		ghost := NewProduct("Ghost", 1, 1, 0)
		ghost.ID = "fake-id"
		_, err = repo.Update(ctx, ghost)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("update onto a held name conflicts", func(t *testing.T) {
		repo := newRepo(t)
		a := NewProduct("Alpha", 1, 1, 0)
		b := NewProduct("Beta", 2, 2, time.Second)
		insertProducts(t, repo, a, b)

		change := *b
		change.Name = "Alpha"
		_, err := repo.Update(ctx, &change)
		assert.ErrorIs(t, err, domain.ErrConflict)

		found, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Beta", found.Name)

		change = *b
		change.Quantity = 3
		_, err = repo.Update(ctx, &change)
		assert.NoError(t, err, "keeping its own name is not a conflict")
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		p := NewProduct("Shelf", 45, 2, 0)
		insertProducts(t, repo, p)

		require.NoError(t, repo.Delete(ctx, p.ID))
		_, err := repo.FindByID(ctx, p.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, p.ID), domain.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "fake-id"), domain.ErrNotFound)
	})

	t.Run("conflicting name", func(t *testing.T) {
		repo := newRepo(t)
		insertProducts(t, repo, NewProduct("X", 1, 1, 0))

		assert.ErrorIs(t, repo.ConflictingName(ctx, "X"), domain.ErrConflict)
		assert.NoError(t, repo.ConflictingName(ctx, "Y"))
		assert.NoError(t, repo.ConflictingName(ctx, "x"))
	})

	t.Run("find by name and ids", func(t *testing.T) {
		repo := newRepo(t)
		a := NewProduct("Alpha", 1, 1, 0)
		b := NewProduct("Beta", 2, 2, time.Second)
		insertProducts(t, repo, a, b)

		found, err := repo.FindByName(ctx, "Beta")
		require.NoError(t, err)
		assert.Equal(t, b.ID, found.ID)

		_, err = repo.FindByName(ctx, "Gamma")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		list, err := repo.FindAllByIDs(ctx, []string{b.ID, uuid.NewString(), "fake-id", a.ID, b.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{"Beta", "Alpha"}, productNames(list))

		list, err = repo.FindAllByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("search defaults to newest first", func(t *testing.T) {
		repo := newRepo(t)
		for i := 0; i < 16; i++ {
			insertProducts(t, repo, NewProduct(fmt.Sprintf("Product %02d", i), 5, 1, time.Duration(i)*time.Second))
		}

		out, err := repo.Search(ctx, domain.SearchInput{Page: 1, PerPage: 15, Sort: "unknown_field", SortDir: "asc"})
		require.NoError(t, err)
		require.Len(t, out.Items, 15)
		assert.Equal(t, 16, out.Total)
		assert.Equal(t, "created_at", out.Sort)
		assert.Equal(t, "desc", out.SortDir)
		assert.Equal(t, "Product 15", out.Items[0].Name)
		assert.Equal(t, "Product 01", out.Items[14].Name)

		out, err = repo.Search(ctx, domain.SearchInput{Page: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"Product 00"}, productNames(out.Items))
		assert.Equal(t, 15, out.PerPage)

		out, err = repo.Search(ctx, domain.SearchInput{Page: 5, PerPage: 15})
		require.NoError(t, err)
		assert.Empty(t, out.Items)
		assert.Equal(t, 16, out.Total)
	})

	t.Run("search filters case-insensitively", func(t *testing.T) {
		repo := newRepo(t)
		for i, name := range []string{"a", "AA", "Aa", "b", "c"} {
			insertProducts(t, repo, NewProduct(name, 1, 1, time.Duration(i)*time.Second))
		}

		out, err := repo.Search(ctx, domain.SearchInput{Filter: "a", Sort: "name", SortDir: "asc"})
		require.NoError(t, err)
		assert.Equal(t, 3, out.Total)
		assert.Equal(t, []string{"AA", "Aa", "a"}, productNames(out.Items))
		assert.Equal(t, "a", out.Filter)

		out, err = repo.Search(ctx, domain.SearchInput{Sort: "name", SortDir: "DESC"})
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a", "Aa", "AA"}, productNames(out.Items))
	})

	t.Run("search filter folds non-ascii case", func(t *testing.T) {
		repo := newRepo(t)
		insertProducts(t, repo,
			NewProduct("Äpfel", 1, 1, 0),
			NewProduct("Crème brûlée", 1, 1, time.Second),
			NewProduct("Apfel", 1, 1, 2*time.Second),
		)

		out, err := repo.Search(ctx, domain.SearchInput{Filter: "äPFEL"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Äpfel"}, productNames(out.Items))

		out, err = repo.Search(ctx, domain.SearchInput{Filter: "CRÈME"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Crème brûlée"}, productNames(out.Items))
	})

	t.Run("search filter matches wildcards literally", func(t *testing.T) {
		repo := newRepo(t)
		insertProducts(t, repo,
			NewProduct("100% cotton", 1, 1, 0),
			NewProduct("1000 cotton", 1, 1, time.Second),
			NewProduct("snake_case", 1, 1, 2*time.Second),
			NewProduct("snakeXcase", 1, 1, 3*time.Second),
			NewProduct(`back\slash`, 1, 1, 4*time.Second),
		)

		for filter, want := range map[string][]string{
			"%":  {"100% cotton"},
			"_":  {"snake_case"},
			`\`:  {`back\slash`},
			"0%": {"100% cotton"},
		} {
			out, err := repo.Search(ctx, domain.SearchInput{Filter: filter})
			require.NoError(t, err)
			assert.Equal(t, want, productNames(out.Items), filter)
		}
	})

	t.Run("search sort ties keep insertion order", func(t *testing.T) {
		repo := newRepo(t)
		insertProducts(t, repo,
			NewProduct("first", 9.99, 5, 2*time.Second),
			NewProduct("second", 9.99, 1, time.Second),
			NewProduct("third", 9.99, 5, 0),
			NewProduct("cheap", 1.5, 7, 3*time.Second),
		)

		out, err := repo.Search(ctx, domain.SearchInput{Sort: "price", SortDir: "asc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"cheap", "first", "second", "third"}, productNames(out.Items))

		out, err = repo.Search(ctx, domain.SearchInput{Sort: "price", SortDir: "whatever"})
		require.NoError(t, err)
		assert.Equal(t, "desc", out.SortDir)
		assert.Equal(t, []string{"first", "second", "third", "cheap"}, productNames(out.Items))

		out, err = repo.Search(ctx, domain.SearchInput{Sort: "quantity", SortDir: "desc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"cheap", "first", "third", "second"}, productNames(out.Items))
	})

	t.Run("search rejects negative paging", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Search(ctx, domain.SearchInput{Page: -1})
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	})

	t.Run("search rejects paging that overflows", func(t *testing.T) {
		repo := newRepo(t)
		insertProducts(t, repo,
			NewProduct("a", 1, 1, 0),
			NewProduct("b", 1, 1, time.Second),
			NewProduct("c", 1, 1, 2*time.Second),
		)

		for _, in := range []domain.SearchInput{
			{Page: 5, PerPage: 1 << 62},
			{Page: 3, PerPage: 1 << 62},
			{PerPage: domain.MaxPerPage + 1},
			{Page: math.MaxInt, PerPage: domain.MaxPerPage},
		} {
			_, err := repo.Search(ctx, in)
			assert.ErrorIs(t, err, domain.ErrBadRequest, "page=%d per_page=%d", in.Page, in.PerPage)
		}

		out, err := repo.Search(ctx, domain.SearchInput{Page: 1 << 40, PerPage: domain.MaxPerPage})
		require.NoError(t, err)
		assert.Empty(t, out.Items)
		assert.Equal(t, 3, out.Total)
	})
}
