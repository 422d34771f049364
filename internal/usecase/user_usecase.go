package usecase

import (
	"context"
	"time"

	"catalog-backend/internal/domain"
	"catalog-backend/internal/search"
	"catalog-backend/pkg/logger"
)

type userUsecase struct {
	repo          domain.UserRepository
	hasher        domain.HashProvider
	searchTimeout time.Duration
}

func NewUserUsecase(repo domain.UserRepository, hasher domain.HashProvider, searchTimeout time.Duration) domain.UserUsecase {
	return &userUsecase{
		repo:          repo,
		hasher:        hasher,
		searchTimeout: searchTimeout,
	}
}

func (u *userUsecase) Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.ConflictingEmail(ctx, in.Email); err != nil {
		return nil, err
	}

	hash, err := u.hasher.GenerateHash(in.Password)
	if err != nil {
		return nil, err
	}
	in.Password = hash

	user, err := u.repo.Insert(ctx, u.repo.Create(in))
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info().Str("user_id", user.ID).Msg("User created")
	return user, nil
}

func (u *userUsecase) Search(ctx context.Context, in domain.SearchInput) (domain.Page[domain.User], error) {
	ctx, cancel := context.WithTimeout(ctx, u.searchTimeout)
	defer cancel()

	out, err := u.repo.Search(ctx, in)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}
	return search.ToPage(out), nil
}
