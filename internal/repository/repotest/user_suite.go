package repotest

import (
	"context"
	"strings"
	"testing"
	"time"

	"catalog-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewUser builds a user created offset after Epoch.
func NewUser(name, email string, offset time.Duration) *domain.User {
	ts := Epoch.Add(offset)
	return &domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  "$2a$06$hash-of-" + name,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func userNames(items []domain.User) []string {
	out := make([]string, len(items))
	for i, u := range items {
		out[i] = u.Name
	}
	return out
}

func insertUsers(t *testing.T, repo domain.UserRepository, items ...*domain.User) {
	t.Helper()
	for _, u := range items {
		_, err := repo.Insert(context.Background(), u)
		require.NoError(t, err)
	}
}

// RunUserSuite checks repo against the user repository contract.
// newRepo must return an empty repository on every call.
func RunUserSuite(t *testing.T, newRepo func(t *testing.T) domain.UserRepository) {
	ctx := context.Background()

	t.Run("insert then find", func(t *testing.T) {
		repo := newRepo(t)
		u := repo.Create(domain.CreateUserInput{
			Name:     "Maria",
			Email:    "maria@example.com",
			Password: "hashed",
			Avatar:   "https://cdn.example.com/maria.png",
		})
		_, err := repo.Insert(ctx, u)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, found.Email)
		assert.Equal(t, "hashed", found.Password)
		assert.Equal(t, u.Avatar, found.Avatar)
		assert.True(t, u.CreatedAt.Equal(found.CreatedAt))

		byEmail, err := repo.FindByEmail(ctx, "maria@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)

		byName, err := repo.FindByName(ctx, "Maria")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byName.ID)

		_, err = repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = repo.FindByName(ctx, "Nobody")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("insert duplicate id conflicts", func(t *testing.T) {
		repo := newRepo(t)
		u := NewUser("John", "john@example.com", 0)
		insertUsers(t, repo, u)

		dup := *u
		dup.Email = "other@example.com"
		_, err := repo.Insert(ctx, &dup)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("conflicting email", func(t *testing.T) {
		repo := newRepo(t)
		insertUsers(t, repo, NewUser("John", "john@example.com", 0))

		assert.ErrorIs(t, repo.ConflictingEmail(ctx, "john@example.com"), domain.ErrConflict)
		assert.NoError(t, repo.ConflictingEmail(ctx, "jane@example.com"))
	})

	t.Run("insert duplicate email conflicts", func(t *testing.T) {
		repo := newRepo(t)
		insertUsers(t, repo, NewUser("John", "john@example.com", 0))

		_, err := repo.Insert(ctx, NewUser("Johnny", "john@example.com", time.Second))
		assert.ErrorIs(t, err, domain.ErrConflict)

		_, err = repo.Insert(ctx, NewUser("John", "other@example.com", time.Second))
		assert.NoError(t, err, "names are not unique")
	})

	t.Run("update onto a held email conflicts", func(t *testing.T) {
		repo := newRepo(t)
		john := NewUser("John", "john@example.com", 0)
		jane := NewUser("Jane", "jane@example.com", time.Second)
		insertUsers(t, repo, john, jane)

		change := *jane
		change.Email = "john@example.com"
		_, err := repo.Update(ctx, &change)
		assert.ErrorIs(t, err, domain.ErrConflict)

		found, err := repo.FindByID(ctx, strings.ToUpper(jane.ID))
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", found.Email)
		assert.Equal(t, jane.ID, found.ID)
	})

	t.Run("update and delete", func(t *testing.T) {
		repo := newRepo(t)
		u := NewUser("John", "john@example.com", 0)
		insertUsers(t, repo, u)

		change := *u
		change.Name = "Johnny"
		updated, err := repo.Update(ctx, &change)
		require.NoError(t, err)
		assert.Equal(t, "Johnny", updated.Name)
		assert.True(t, u.CreatedAt.Equal(updated.CreatedAt))
		assert.False(t, updated.UpdatedAt.Before(u.UpdatedAt))

		require.NoError(t, repo.Delete(ctx, u.ID))
		_, err = repo.FindByID(ctx, u.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = repo.Update(ctx, &change)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "fake-id"), domain.ErrNotFound)
	})

	t.Run("search", func(t *testing.T) {
		repo := newRepo(t)
		insertUsers(t, repo,
			NewUser("Maria", "z@example.com", 0),
			NewUser("mario", "a@example.com", time.Second),
			NewUser("John", "m@example.com", 2*time.Second),
		)

		out, err := repo.Search(ctx, domain.SearchInput{})
		require.NoError(t, err)
		assert.Equal(t, []string{"John", "mario", "Maria"}, userNames(out.Items))
		assert.Equal(t, 3, out.Total)

		out, err = repo.Search(ctx, domain.SearchInput{Filter: "MAR", Sort: "email", SortDir: "asc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"mario", "Maria"}, userNames(out.Items))
		assert.Equal(t, 2, out.Total)

		out, err = repo.Search(ctx, domain.SearchInput{Sort: "password", SortDir: "asc"})
		require.NoError(t, err)
		assert.Equal(t, "created_at", out.Sort)
		assert.Equal(t, "desc", out.SortDir)

		out, err = repo.Search(ctx, domain.SearchInput{Page: 2, PerPage: 2, Sort: "name", SortDir: "asc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"mario"}, userNames(out.Items))
		assert.Equal(t, 3, out.Total)
	})
}
