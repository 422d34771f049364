package v1

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"catalog-backend/config"
	"catalog-backend/internal/domain"
	"catalog-backend/internal/infrastructure/cache"
	"catalog-backend/internal/infrastructure/hashing"
	"catalog-backend/internal/infrastructure/token"
	"catalog-backend/internal/repository/memory"
	"catalog-backend/internal/usecase"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{CacheProductTTL: time.Minute, SearchTimeout: time.Second}

	productRepo := memory.NewProductRepository()
	userRepo := memory.NewUserRepository()
	hasher := hashing.NewBcryptHasher(bcrypt.MinCost)
	tokens, err := token.NewJWTProvider("secret", "catalog", time.Hour)
	require.NoError(t, err)

	mux := http.NewServeMux()
	RegisterRoutes(mux,
		NewProductHandler(usecase.NewProductUsecase(productRepo, cache.NewMemoryCache[domain.Product](time.Minute, time.Minute), cfg)),
		NewUserHandler(usecase.NewUserUsecase(userRepo, hasher, cfg.SearchTimeout)),
		NewAuthHandler(usecase.NewAuthUsecase(userRepo, hasher, tokens)),
	)
	return mux
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestProductEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec, env := do(t, srv, http.MethodPost, "/api/v1/products", `{"name":"Lamp","price":19.99,"quantity":3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Lamp", created.Name)

	rec, _ = do(t, srv, http.MethodPost, "/api/v1/products", `{"name":"Lamp","price":5,"quantity":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = do(t, srv, http.MethodPost, "/api/v1/products", `{"name":"","price":5,"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)

	rec, _ = do(t, srv, http.MethodPost, "/api/v1/products", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, srv, http.MethodGet, "/api/v1/products/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, created.ID, got.ID)

	rec, env = do(t, srv, http.MethodPut, "/api/v1/products/"+created.ID, `{"quantity":7}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 7, got.Quantity)
	assert.Equal(t, "Lamp", got.Name)

	rec, _ = do(t, srv, http.MethodGet, "/api/v1/products/fake-id", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, srv, http.MethodDelete, "/api/v1/products/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = do(t, srv, http.MethodDelete, "/api/v1/products/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductSearchEndpoint(t *testing.T) {
	srv := newTestServer(t)
	for i := 0; i < 16; i++ {
		rec, _ := do(t, srv, http.MethodPost, "/api/v1/products",
			fmt.Sprintf(`{"name":"Product %02d","price":%d,"quantity":1}`, i, i+1))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, env := do(t, srv, http.MethodGet, "/api/v1/products?page=2&per_page=5&sort=price&sort_dir=asc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page domain.Page[domain.Product]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 16, page.Total)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 4, page.LastPage)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "Product 05", page.Items[0].Name)

	rec, env = do(t, srv, http.MethodGet, "/api/v1/products?filter=product%2001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.Total)

	rec, _ = do(t, srv, http.MethodGet, "/api/v1/products?page=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, srv, http.MethodGet, "/api/v1/products?page=5&per_page=4611686018427387904", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, "per_page")
}

func TestUserAndLoginEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec, env := do(t, srv, http.MethodPost, "/api/v1/users",
		`{"name":"Maria","email":"maria@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, string(env.Data), "password")
	assert.NotContains(t, string(env.Data), "s3cret")

	rec, _ = do(t, srv, http.MethodPost, "/api/v1/users",
		`{"name":"Other","email":"maria@example.com","password":"x"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = do(t, srv, http.MethodGet, "/api/v1/users?filter=mar", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page domain.Page[domain.User]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.Total)

	rec, env = do(t, srv, http.MethodPost, "/api/v1/auth/login", `{"email":"maria@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res domain.AuthResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "maria@example.com", res.User.Email)

	rec, _ = do(t, srv, http.MethodPost, "/api/v1/auth/login", `{"email":"maria@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth(t *testing.T) {
	rec, _ := do(t, newTestServer(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", domain.ErrBadRequest), http.StatusBadRequest},
		{fmt.Errorf("%w: x", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: x", domain.ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: x", domain.ErrInvalidCredentials), http.StatusUnauthorized},
		{fmt.Errorf("%w: x", domain.ErrUnexpectedHashFormat), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
