package domain

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductInput carries the fields a caller may set on a new product.
type CreateProductInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (in CreateProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return wrap(ErrBadRequest, "product name is required")
	}
	if in.Price <= 0 {
		return wrap(ErrBadRequest, "product price must be greater than 0")
	}
	if in.Quantity <= 0 {
		return wrap(ErrBadRequest, "product quantity must be greater than 0")
	}
	return nil
}

// UpdateProductInput holds a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	ID       string   `json:"-"`
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
}

func (in UpdateProductInput) Validate() error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return wrap(ErrBadRequest, "product name cannot be empty")
	}
	if in.Price != nil && *in.Price <= 0 {
		return wrap(ErrBadRequest, "product price must be greater than 0")
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		return wrap(ErrBadRequest, "product quantity must be greater than 0")
	}
	return nil
}

// NewProduct builds an unsaved product with a fresh id and creation timestamps.
// Price is kept to cents, matching the NUMERIC(10,2) column.
func NewProduct(in CreateProductInput, now time.Time) *Product {
	ts := Timestamp(now)
	return &Product{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Price:     RoundPrice(in.Price),
		Quantity:  in.Quantity,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func RoundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}

// Timestamp normalizes t to the precision PostgreSQL stores.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// --- Interfaces ---

type ProductRepository interface {
	Repository[Product, CreateProductInput]

	FindByName(ctx context.Context, name string) (*Product, error)
	// FindAllByIDs returns the products that exist among ids, in the order of ids.
	FindAllByIDs(ctx context.Context, ids []string) ([]Product, error)
	// ConflictingName fails with ErrConflict when a product already uses name.
	ConflictingName(ctx context.Context, name string) error
}
