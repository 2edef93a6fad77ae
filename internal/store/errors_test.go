package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrUserNotFound", err: ErrUserNotFound, expected: true},
		{
			name:     "wrapped ErrUserNotFound",
			err:      fmt.Errorf("failed to find user: %w", ErrUserNotFound),
			expected: true,
		},
		{name: "ErrEmailExists", err: ErrEmailExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: true},
		{name: "ErrEmailExists", err: ErrEmailExists, expected: true},
		{
			name:     "wrapped ErrEmailExists",
			err:      fmt.Errorf("insert: %w", ErrEmailExists),
			expected: true,
		},
		{name: "ErrUserNotFound", err: ErrUserNotFound, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDuplicateError(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "entity not found: user", ErrUserNotFound.Error())
	assert.Equal(t, "entity already exists: email", ErrEmailExists.Error())
}
