package usecase

import (
	"context"
	"errors"
	"fmt"

	"catalog-backend/internal/domain"
	"catalog-backend/pkg/logger"
)

type authUsecase struct {
	userRepo domain.UserRepository
	hasher   domain.HashProvider
	tokens   domain.AuthProvider
}

func NewAuthUsecase(userRepo domain.UserRepository, hasher domain.HashProvider, tokens domain.AuthProvider) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

var errBadLogin = fmt.Errorf("%w: email and/or password not valid", domain.ErrInvalidCredentials)

func (u *authUsecase) Authenticate(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidCredentials)
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errBadLogin
		}
		return nil, err
	}

	ok, err := u.hasher.CompareHash(password, user.Password)
	if err != nil {
		logger.WithContext(ctx).Error().Err(err).Str("user_id", user.ID).Msg("Stored password hash is unreadable")
		return nil, err
	}
	if !ok {
		logger.WithContext(ctx).Warn().Str("user_id", user.ID).Msg("Login rejected")
		return nil, errBadLogin
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	logger.WithContext(ctx).Info().Str("user_id", user.ID).Msg("User authenticated")
	return &domain.AuthResult{User: user, AccessToken: token}, nil
}

func (u *authUsecase) Authorize(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", domain.ErrInvalidCredentials)
	}
	subject, err := u.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: token subject no longer exists", domain.ErrInvalidCredentials)
		}
		return nil, err
	}
	return user, nil
}
