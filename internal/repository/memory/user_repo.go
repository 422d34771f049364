package memory

import (
	"context"
	"fmt"
	"time"

	"catalog-backend/internal/domain"
	"catalog-backend/internal/search"
)

var errUserKeyTaken = fmt.Errorf("%w: email already used on another user", domain.ErrConflict)

type userRepository struct {
	store *store[domain.User]
	now   func() time.Time
}

func NewUserRepository() domain.UserRepository {
	return &userRepository{
		store: newStore("user",
			func(u domain.User) string { return u.ID },
			func(u domain.User) string { return u.Email },
			errUserKeyTaken),
		now: time.Now,
	}
}

func (r *userRepository) Create(props domain.CreateUserInput) *domain.User {
	return domain.NewUser(props, r.now())
}

func (r *userRepository) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, ok := canonicalID(u.ID)
	if !ok {
		return nil, fmt.Errorf("%w: invalid user id %q", domain.ErrBadRequest, u.ID)
	}
	stored := *u
	stored.ID = id
	stored.CreatedAt = domain.Timestamp(stored.CreatedAt)
	stored.UpdatedAt = domain.Timestamp(stored.UpdatedAt)
	if err := r.store.insert(stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := r.store.get(id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findBy(ctx, "email", email, func(u domain.User) bool { return u.Email == email })
}

func (r *userRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	return r.findBy(ctx, "name", name, func(u domain.User) bool { return u.Name == name })
}

func (r *userRepository) findBy(ctx context.Context, field, value string, match func(domain.User) bool) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, ok := r.store.first(match)
	if !ok {
		return nil, fmt.Errorf("%w: user not found using %s %s", domain.ErrNotFound, field, value)
	}
	return &u, nil
}

func (r *userRepository) ConflictingEmail(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := r.store.first(func(u domain.User) bool { return u.Email == email }); ok {
		return errUserKeyTaken
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := domain.Timestamp(r.now())
	updated, err := r.store.replace(u.ID, func(stored domain.User) domain.User {
		next := *u
		next.ID = stored.ID
		next.CreatedAt = stored.CreatedAt
		next.UpdatedAt = now
		return next
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.remove(id)
}

func (r *userRepository) Search(ctx context.Context, in domain.SearchInput) (domain.SearchOutput[domain.User], error) {
	if err := ctx.Err(); err != nil {
		return domain.SearchOutput[domain.User]{}, err
	}
	return search.Users.Apply(r.store.snapshot(), in)
}
