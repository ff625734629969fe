package mocks

import (
	"errors"
	"strings"
)

const mockHashPrefix = "mock-hash:"

// ErrPasswordMismatch is returned by MockPasswordHasher.Compare on mismatch.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordHasher implements auth.PasswordHasher and auth.PasswordVerifier
// with a reversible, instant encoding.
type MockPasswordHasher struct {
	HashErr error

	CompareCallCount int
}

// HashPassword implements auth.PasswordHasher.
func (m *MockPasswordHasher) HashPassword(password string) (string, error) {
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return mockHashPrefix + password, nil
}

// Compare implements auth.PasswordVerifier.
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.CompareCallCount++
	if !strings.HasPrefix(hashedPassword, mockHashPrefix) ||
		strings.TrimPrefix(hashedPassword, mockHashPrefix) != password {
		return ErrPasswordMismatch
	}
	return nil
}
