package pgrepo

import (
	"context"
	"os"
	"testing"

	"catalog-backend/internal/domain"
	"catalog-backend/internal/repository/repotest"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// testPool connects to TEST_DB_DSN, skipping the test when it is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, EnsureSchema(ctx, pool))
	return pool
}

func truncate(t *testing.T, pool *pgxpool.Pool, table string) {
	t.Helper()
	_, err := pool.Exec(context.Background(), "TRUNCATE TABLE "+table+" RESTART IDENTITY")
	require.NoError(t, err)
}

func TestProductRepository(t *testing.T) {
	pool := testPool(t)
	tx := NewTransactionManager(pool)

	repotest.RunProductSuite(t, func(t *testing.T) domain.ProductRepository {
		truncate(t, pool, "products")
		return NewProductRepository(pool, tx)
	})
}

func TestUserRepository(t *testing.T) {
	pool := testPool(t)
	tx := NewTransactionManager(pool)

	repotest.RunUserSuite(t, func(t *testing.T) domain.UserRepository {
		truncate(t, pool, "users")
		return NewUserRepository(pool, tx)
	})
}

func TestProductRepository_NameUniqueConstraint(t *testing.T) {
	pool := testPool(t)
	truncate(t, pool, "products")
	repo := NewProductRepository(pool, NewTransactionManager(pool))
	ctx := context.Background()

	_, err := repo.Insert(ctx, repotest.NewProduct("Lamp", 10, 1, 0))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, repotest.NewProduct("Lamp", 12, 1, 0))
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestTransactionManager_RollsBack(t *testing.T) {
	pool := testPool(t)
	truncate(t, pool, "products")
	tm := NewTransactionManager(pool)
	repo := NewProductRepository(pool, tm)
	ctx := context.Background()

	p := repotest.NewProduct("Rolled back", 10, 1, 0)
	err := tm.Do(ctx, func(ctx context.Context) error {
		if _, err := repo.Insert(ctx, p); err != nil {
			return err
		}
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	_, err = repo.FindByID(ctx, p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
