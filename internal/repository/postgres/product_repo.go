package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-backend/internal/domain"
	"catalog-backend/internal/search"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = "id, name, price, quantity, created_at, updated_at"

type productRepository struct {
	db  *pgxpool.Pool
	tx  domain.TransactionManager
	now func() time.Time
}

func NewProductRepository(db *pgxpool.Pool, tx domain.TransactionManager) domain.ProductRepository {
	return &productRepository{db: db, tx: tx, now: time.Now}
}

// --- Mappers ---

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		id                   pgtype.UUID
		name                 string
		price                pgtype.Numeric
		quantity             int32
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &name, &price, &quantity, &createdAt, &updatedAt); err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		ID:        uuidToString(id),
		Name:      name,
		Price:     numericToFloat64(price),
		Quantity:  int(quantity),
		CreatedAt: pgtimestamptzToTime(createdAt),
		UpdatedAt: pgtimestamptzToTime(updatedAt),
	}, nil
}

func productNotFound(id string) error {
	return fmt.Errorf("%w: product not found using ID %s", domain.ErrNotFound, id)
}

func productConflict(err error) error {
	return fmt.Errorf("%w: product already exists: %v", domain.ErrConflict, err)
}

// --- Methods ---

func (r *productRepository) Create(props domain.CreateProductInput) *domain.Product {
	return domain.NewProduct(props, r.now())
}

func (r *productRepository) Insert(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	id := stringToUUID(p.ID)
	if !id.Valid {
		return nil, fmt.Errorf("%w: invalid product id %q", domain.ErrBadRequest, p.ID)
	}

	row := conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO products (id, name, price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+productColumns,
		id, p.Name, float64ToNumeric(p.Price), int32(p.Quantity),
		timeToTimestamptz(domain.Timestamp(p.CreatedAt)), timeToTimestamptz(domain.Timestamp(p.UpdatedAt)))

	saved, err := scanProduct(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, productConflict(err)
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &saved, nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	uid := stringToUUID(id)
	if !uid.Valid {
		return nil, productNotFound(id)
	}

	p, err := scanProduct(conn(ctx, r.db).QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, productNotFound(id)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

func (r *productRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	p, err := scanProduct(conn(ctx, r.db).QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product not found using name %s", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("find product by name: %w", err)
	}
	return &p, nil
}

func (r *productRepository) FindAllByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	uids := make([]pgtype.UUID, 0, len(ids))
	for _, id := range ids {
		if uid := stringToUUID(id); uid.Valid {
			uids = append(uids, uid)
		}
	}
	if len(uids) == 0 {
		return []domain.Product{}, nil
	}

	rows, err := conn(ctx, r.db).Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, uids)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]domain.Product, len(uids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Keep the caller's order; ids may be in any textual case.
	out := make([]domain.Product, 0, len(byID))
	for _, uid := range uids {
		key := uuidToString(uid)
		if p, ok := byID[key]; ok {
			out = append(out, p)
			delete(byID, key)
		}
	}
	return out, nil
}

func (r *productRepository) ConflictingName(ctx context.Context, name string) error {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check product name: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: name already used on another product", domain.ErrConflict)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	uid := stringToUUID(p.ID)
	if !uid.Valid {
		return nil, productNotFound(p.ID)
	}

	var updated domain.Product
	err := r.tx.Do(ctx, func(ctx context.Context) error {
		q := conn(ctx, r.db)

		var seq int64
		if err := q.QueryRow(ctx, `SELECT seq FROM products WHERE id = $1 FOR UPDATE`, uid).Scan(&seq); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return productNotFound(p.ID)
			}
			return err
		}

		var err error
		updated, err = scanProduct(q.QueryRow(ctx, `
			UPDATE products SET name = $2, price = $3, quantity = $4, updated_at = $5
			WHERE id = $1
			RETURNING `+productColumns,
			uid, p.Name, float64ToNumeric(p.Price), int32(p.Quantity),
			timeToTimestamptz(domain.Timestamp(r.now()))))
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, productConflict(err)
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &updated, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	uid := stringToUUID(id)
	if !uid.Valid {
		return productNotFound(id)
	}

	err := r.tx.Do(ctx, func(ctx context.Context) error {
		q := conn(ctx, r.db)

		var seq int64
		if err := q.QueryRow(ctx, `SELECT seq FROM products WHERE id = $1 FOR UPDATE`, uid).Scan(&seq); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return productNotFound(id)
			}
			return err
		}
		_, err := q.Exec(ctx, `DELETE FROM products WHERE id = $1`, uid)
		return err
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete product: %w", err)
	}
	return err
}

func (r *productRepository) Search(ctx context.Context, in domain.SearchInput) (domain.SearchOutput[domain.Product], error) {
	plan, err := search.Products.Resolve(in)
	if err != nil {
		return domain.SearchOutput[domain.Product]{}, err
	}
	q, err := buildSearch("products", productColumns, search.Products, plan)
	if err != nil {
		return domain.SearchOutput[domain.Product]{}, err
	}

	db := conn(ctx, r.db)

	// Get total count
	var total int64
	if err := db.QueryRow(ctx, q.countSQL, q.countArgs...).Scan(&total); err != nil {
		return domain.SearchOutput[domain.Product]{}, fmt.Errorf("count products: %w", err)
	}
	if total == 0 {
		return search.Output(plan, []domain.Product{}, 0), nil
	}

	rows, err := db.Query(ctx, q.listSQL, q.listArgs...)
	if err != nil {
		return domain.SearchOutput[domain.Product]{}, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Product, 0, min(plan.PerPage, int(total)))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return domain.SearchOutput[domain.Product]{}, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return domain.SearchOutput[domain.Product]{}, err
	}
	return search.Output(plan, items, int(total)), nil
}
