package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalog-backend/config"
	"catalog-backend/internal/domain"
	"catalog-backend/internal/search"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/logger"

	"github.com/google/uuid"
)

type productUsecase struct {
	repo          domain.ProductRepository
	cache         cache.Cache[domain.Product]
	cacheTTL      time.Duration
	searchTimeout time.Duration

	// gen counts writes. A cache fill is dropped when a write happened
	// between its read and its Set.
	mu  sync.Mutex
	gen uint64
}

func NewProductUsecase(repo domain.ProductRepository, cache cache.Cache[domain.Product], cfg *config.Config) domain.ProductUsecase {
	return &productUsecase{
		repo:          repo,
		cache:         cache,
		cacheTTL:      cfg.CacheProductTTL,
		searchTimeout: cfg.SearchTimeout,
	}
}

// productCacheKey keys every textual form of a UUID to the same entry.
func productCacheKey(id string) string {
	if u, err := uuid.Parse(id); err == nil {
		id = u.String()
	}
	return fmt.Sprintf("product:id:%s", id)
}

func (u *productUsecase) generation() uint64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.gen
}

// invalidate drops the cached entry and fences out fills that read before the write.
func (u *productUsecase) invalidate(id string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.gen++
	u.cache.Delete(productCacheKey(id))
}

func (u *productUsecase) fill(gen uint64, p *domain.Product) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.gen == gen {
		u.cache.Set(productCacheKey(p.ID), *p, u.cacheTTL)
	}
}

func (u *productUsecase) Create(ctx context.Context, in domain.CreateProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.ConflictingName(ctx, in.Name); err != nil {
		return nil, err
	}

	product, err := u.repo.Insert(ctx, u.repo.Create(in))
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info().Str("product_id", product.ID).Msg("Product created")
	return product, nil
}

// Get is read-through cached; Update and Delete invalidate the entry.
func (u *productUsecase) Get(ctx context.Context, id string) (*domain.Product, error) {
	key := productCacheKey(id)
	if p, found := u.cache.Get(key); found {
		return &p, nil
	}

	gen := u.generation()
	product, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.fill(gen, product)
	return product, nil
}

func (u *productUsecase) Update(ctx context.Context, in domain.UpdateProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	product, err := u.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	// Guard the natural key only when it changes.
	if in.Name != nil && *in.Name != product.Name {
		if err := u.repo.ConflictingName(ctx, *in.Name); err != nil {
			return nil, err
		}
		product.Name = *in.Name
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}

	updated, err := u.repo.Update(ctx, product)
	u.invalidate(in.ID)
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info().Str("product_id", updated.ID).Msg("Product updated")
	return updated, nil
}

func (u *productUsecase) Delete(ctx context.Context, id string) error {
	err := u.repo.Delete(ctx, id)
	u.invalidate(id)
	if err != nil {
		return err
	}

	logger.WithContext(ctx).Info().Str("product_id", id).Msg("Product deleted")
	return nil
}

func (u *productUsecase) Search(ctx context.Context, in domain.SearchInput) (domain.Page[domain.Product], error) {
	ctx, cancel := context.WithTimeout(ctx, u.searchTimeout)
	defer cancel()

	out, err := u.repo.Search(ctx, in)
	if err != nil {
		return domain.Page[domain.Product]{}, err
	}
	return search.ToPage(out), nil
}
