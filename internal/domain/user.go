package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        string    `json:"id"` // UUID
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // hash, never plaintext
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar,omitempty"`
}

func (in CreateUserInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return wrap(ErrBadRequest, "input data not provided or invalid")
	}
	return nil
}

// NewUser builds an unsaved user. in.Password must already be hashed.
func NewUser(in CreateUserInput, now time.Time) *User {
	ts := Timestamp(now)
	return &User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		Avatar:    in.Avatar,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

type UserRepository interface {
	Repository[User, CreateUserInput]

	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByName(ctx context.Context, name string) (*User, error)
	// ConflictingEmail fails with ErrConflict when a user already uses email.
	ConflictingEmail(ctx context.Context, email string) error
}
