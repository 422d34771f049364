package domain

import "context"

type ProductUsecase interface {
	Create(ctx context.Context, in CreateProductInput) (*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, in UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, in SearchInput) (Page[Product], error)
}

type UserUsecase interface {
	Create(ctx context.Context, in CreateUserInput) (*User, error)
	Search(ctx context.Context, in SearchInput) (Page[User], error)
}

// AuthResult is returned by a successful login.
type AuthResult struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}

type AuthUsecase interface {
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	// Authorize resolves a bearer token to its user.
	Authorize(ctx context.Context, token string) (*User, error)
}
