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

const userColumns = "id, name, email, password, avatar, created_at, updated_at"

type userRepository struct {
	db  *pgxpool.Pool
	tx  domain.TransactionManager
	now func() time.Time
}

func NewUserRepository(db *pgxpool.Pool, tx domain.TransactionManager) domain.UserRepository {
	return &userRepository{db: db, tx: tx, now: time.Now}
}

// --- Mappers ---

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		id                   pgtype.UUID
		u                    domain.User
		avatar               *string
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &u.Name, &u.Email, &u.Password, &avatar, &createdAt, &updatedAt); err != nil {
		return domain.User{}, err
	}
	u.ID = uuidToString(id)
	u.Avatar = ptrString(avatar)
	u.CreatedAt = pgtimestamptzToTime(createdAt)
	u.UpdatedAt = pgtimestamptzToTime(updatedAt)
	return u, nil
}

func userNotFound(field, value string) error {
	return fmt.Errorf("%w: user not found using %s %s", domain.ErrNotFound, field, value)
}

func userConflict(err error) error {
	return fmt.Errorf("%w: user already exists: %v", domain.ErrConflict, err)
}

// --- Methods ---

func (r *userRepository) Create(props domain.CreateUserInput) *domain.User {
	return domain.NewUser(props, r.now())
}

func (r *userRepository) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	id := stringToUUID(u.ID)
	if !id.Valid {
		return nil, fmt.Errorf("%w: invalid user id %q", domain.ErrBadRequest, u.ID)
	}

	saved, err := scanUser(conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO users (id, name, email, password, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		id, u.Name, u.Email, u.Password, strPtr(u.Avatar),
		timeToTimestamptz(domain.Timestamp(u.CreatedAt)), timeToTimestamptz(domain.Timestamp(u.UpdatedAt))))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, userConflict(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &saved, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	uid := stringToUUID(id)
	if !uid.Valid {
		return nil, userNotFound("ID", id)
	}
	return r.findOne(ctx, "id", uid, "ID", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email", email, "email", email)
}

func (r *userRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	return r.findOne(ctx, "name", name, "name", name)
}

// findOne returns the earliest inserted user whose column equals arg.
func (r *userRepository) findOne(ctx context.Context, column string, arg any, field, value string) (*domain.User, error) {
	u, err := scanUser(conn(ctx, r.db).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = $1 ORDER BY seq LIMIT 1`, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, userNotFound(field, value)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) ConflictingEmail(ctx context.Context, email string) error {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check user email: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: email already used on another user", domain.ErrConflict)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	uid := stringToUUID(u.ID)
	if !uid.Valid {
		return nil, userNotFound("ID", u.ID)
	}

	var updated domain.User
	err := r.tx.Do(ctx, func(ctx context.Context) error {
		q := conn(ctx, r.db)

		var seq int64
		if err := q.QueryRow(ctx, `SELECT seq FROM users WHERE id = $1 FOR UPDATE`, uid).Scan(&seq); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return userNotFound("ID", u.ID)
			}
			return err
		}

		var err error
		updated, err = scanUser(q.QueryRow(ctx, `
			UPDATE users SET name = $2, email = $3, password = $4, avatar = $5, updated_at = $6
			WHERE id = $1
			RETURNING `+userColumns,
			uid, u.Name, u.Email, u.Password, strPtr(u.Avatar),
			timeToTimestamptz(domain.Timestamp(r.now()))))
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, userConflict(err)
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &updated, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	uid := stringToUUID(id)
	if !uid.Valid {
		return userNotFound("ID", id)
	}

	err := r.tx.Do(ctx, func(ctx context.Context) error {
		q := conn(ctx, r.db)

		var seq int64
		if err := q.QueryRow(ctx, `SELECT seq FROM users WHERE id = $1 FOR UPDATE`, uid).Scan(&seq); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return userNotFound("ID", id)
			}
			return err
		}
		_, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, uid)
		return err
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete user: %w", err)
	}
	return err
}

func (r *userRepository) Search(ctx context.Context, in domain.SearchInput) (domain.SearchOutput[domain.User], error) {
	plan, err := search.Users.Resolve(in)
	if err != nil {
		return domain.SearchOutput[domain.User]{}, err
	}
	q, err := buildSearch("users", userColumns, search.Users, plan)
	if err != nil {
		return domain.SearchOutput[domain.User]{}, err
	}

	db := conn(ctx, r.db)

	var total int64
	if err := db.QueryRow(ctx, q.countSQL, q.countArgs...).Scan(&total); err != nil {
		return domain.SearchOutput[domain.User]{}, fmt.Errorf("count users: %w", err)
	}
	if total == 0 {
		return search.Output(plan, []domain.User{}, 0), nil
	}

	rows, err := db.Query(ctx, q.listSQL, q.listArgs...)
	if err != nil {
		return domain.SearchOutput[domain.User]{}, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	items := make([]domain.User, 0, min(plan.PerPage, int(total)))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return domain.SearchOutput[domain.User]{}, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return domain.SearchOutput[domain.User]{}, err
	}
	return search.Output(plan, items, int(total)), nil
}
