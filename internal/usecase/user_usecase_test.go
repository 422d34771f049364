package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-backend/internal/domain"
	"catalog-backend/internal/mocks"
	"catalog-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserUsecase_Create(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	hasher := &mocks.HashProvider{}
	uc := NewUserUsecase(repo, hasher, time.Second)

	hasher.On("GenerateHash", "pw-123").Return("hashed-pw", nil).Once()

	u, err := uc.Create(ctx, domain.CreateUserInput{Name: "Maria", Email: "maria@example.com", Password: "pw-123"})
	require.NoError(t, err)
	assert.Equal(t, "hashed-pw", u.Password)

	stored, err := repo.FindByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed-pw", stored.Password)

	// Conflicts are detected before hashing.
	_, err = uc.Create(ctx, domain.CreateUserInput{Name: "Other", Email: "maria@example.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, domain.CreateUserInput{Name: "NoPass", Email: "x@example.com"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	hasher.AssertExpectations(t)
}

func TestUserUsecase_CreateHashFailure(t *testing.T) {
	hasher := &mocks.HashProvider{}
	uc := NewUserUsecase(memory.NewUserRepository(), hasher, time.Second)
	boom := errors.New("entropy exhausted")
	hasher.On("GenerateHash", "pw").Return("", boom)

	_, err := uc.Create(context.Background(), domain.CreateUserInput{Name: "A", Email: "a@example.com", Password: "pw"})
	assert.ErrorIs(t, err, boom)
}

func TestUserUsecase_Search(t *testing.T) {
	ctx := context.Background()
	hasher := &mocks.HashProvider{}
	hasher.On("GenerateHash", "pw").Return("hashed", nil)
	uc := NewUserUsecase(memory.NewUserRepository(), hasher, time.Second)

	for _, name := range []string{"Maria", "Mario", "John"} {
		_, err := uc.Create(ctx, domain.CreateUserInput{Name: name, Email: name + "@example.com", Password: "pw"})
		require.NoError(t, err)
	}

	page, err := uc.Search(ctx, domain.SearchInput{Filter: "mar", PerPage: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.LastPage)
	assert.Len(t, page.Items, 1)
}
