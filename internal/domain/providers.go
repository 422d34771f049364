package domain

// HashProvider hashes and verifies passwords.
type HashProvider interface {
	// GenerateHash returns a salted one-way hash; two calls with the same
	// input return different strings.
	GenerateHash(plain string) (string, error)
	// CompareHash reports whether plain produced hash. A mismatch is (false, nil);
	// only an undecodable hash yields an error wrapping ErrUnexpectedHashFormat.
	CompareHash(plain, hash string) (bool, error)
}

// AuthProvider issues and verifies bearer credentials bound to a subject.
type AuthProvider interface {
	Issue(subject string) (string, error)
	// Verify returns the embedded subject or an error wrapping ErrInvalidCredentials.
	Verify(token string) (string, error)
}
