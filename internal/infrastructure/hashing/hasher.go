// Package hashing provides the password hash providers.
package hashing

import (
	"fmt"

	"catalog-backend/internal/domain"
)

const (
	AlgorithmBcrypt = "bcrypt"
	AlgorithmArgon2 = "argon2"
)

// New returns the provider for algorithm. bcryptCost is ignored for argon2.
func New(algorithm string, bcryptCost int) (domain.HashProvider, error) {
	switch algorithm {
	case AlgorithmBcrypt, "":
		return NewBcryptHasher(bcryptCost), nil
	case AlgorithmArgon2:
		return NewArgon2Hasher(), nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", algorithm)
	}
}
