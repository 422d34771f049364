package mocks

import "github.com/stretchr/testify/mock"

type AuthProvider struct{ mock.Mock }

func (m *AuthProvider) Issue(subject string) (string, error) {
	args := m.Called(subject)
	return args.String(0), args.Error(1)
}

func (m *AuthProvider) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
