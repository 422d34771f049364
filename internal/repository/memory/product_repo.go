package memory

import (
	"context"
	"fmt"
	"time"

	"catalog-backend/internal/domain"
	"catalog-backend/internal/search"
)

var errProductKeyTaken = fmt.Errorf("%w: name already used on another product", domain.ErrConflict)

type productRepository struct {
	store *store[domain.Product]
	now   func() time.Time
}

func NewProductRepository() domain.ProductRepository {
	return &productRepository{
		store: newStore("product",
			func(p domain.Product) string { return p.ID },
			func(p domain.Product) string { return p.Name },
			errProductKeyTaken),
		now: time.Now,
	}
}

func (r *productRepository) Create(props domain.CreateProductInput) *domain.Product {
	return domain.NewProduct(props, r.now())
}

func (r *productRepository) Insert(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, ok := canonicalID(p.ID)
	if !ok {
		return nil, fmt.Errorf("%w: invalid product id %q", domain.ErrBadRequest, p.ID)
	}
	stored := *p
	stored.ID = id
	stored.Price = domain.RoundPrice(stored.Price)
	stored.CreatedAt = domain.Timestamp(stored.CreatedAt)
	stored.UpdatedAt = domain.Timestamp(stored.UpdatedAt)
	if err := r.store.insert(stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := r.store.get(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, ok := r.store.first(func(p domain.Product) bool { return p.Name == name })
	if !ok {
		return nil, fmt.Errorf("%w: product not found using name %s", domain.ErrNotFound, name)
	}
	return &p, nil
}

func (r *productRepository) FindAllByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.store.pick(ids), nil
}

func (r *productRepository) ConflictingName(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := r.store.first(func(p domain.Product) bool { return p.Name == name }); ok {
		return errProductKeyTaken
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := domain.Timestamp(r.now())
	updated, err := r.store.replace(p.ID, func(stored domain.Product) domain.Product {
		next := *p
		next.ID = stored.ID
		next.Price = domain.RoundPrice(next.Price)
		next.CreatedAt = stored.CreatedAt
		next.UpdatedAt = now
		return next
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.remove(id)
}

func (r *productRepository) Search(ctx context.Context, in domain.SearchInput) (domain.SearchOutput[domain.Product], error) {
	if err := ctx.Err(); err != nil {
		return domain.SearchOutput[domain.Product]{}, err
	}
	return search.Products.Apply(r.store.snapshot(), in)
}
