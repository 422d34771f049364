package mocks

import "github.com/stretchr/testify/mock"

type HashProvider struct{ mock.Mock }

func (m *HashProvider) GenerateHash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *HashProvider) CompareHash(plain, hash string) (bool, error) {
	args := m.Called(plain, hash)
	return args.Bool(0), args.Error(1)
}
