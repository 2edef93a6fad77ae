package mocks

import (
	"errors"
	"strings"
)

const plainPrefix = "plain:"

// MockPasswordHasher implements auth.PasswordHasher without bcrypt's cost.
// By default Hash prefixes the password with "plain:".
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(secret, password string) error
}

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return plainPrefix + password, nil
}

// Compare implements auth.PasswordHasher.
func (m *MockPasswordHasher) Compare(secret, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(secret, password)
	}
	if strings.TrimPrefix(secret, plainPrefix) != password {
		return errors.New("password does not match")
	}
	return nil
}
