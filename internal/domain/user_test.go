package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewUser(t *testing.T) {
	user, err := NewUser("a@x.com", "secret-hash", "A", RoleUser)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "A", user.Name)
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, "secret-hash", user.PasswordSecret)
	assert.NotNil(t, user.Credentials)
	assert.Empty(t, user.Credentials)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		secret   string
		userName string
		role     Role
		wantErr  error
	}{
		{"empty email", "", "s", "A", RoleUser, ErrEmptyEmail},
		{"empty name", "a@x.com", "s", "", RoleUser, ErrEmptyName},
		{"unknown role", "a@x.com", "s", "A", Role("root"), ErrInvalidRole},
		{"empty secret", "a@x.com", "", "A", RoleAdmin, ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.email, tt.secret, tt.userName, tt.role)
			assert.Nil(t, user)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("Admin").Valid())
}

func TestUserApplyOverwritesOnlyPresentFields(t *testing.T) {
	user, err := NewUser("a@x.com", "s", "A", RoleUser)
	require.NoError(t, err)
	user.AddCredential(CredentialInput{Website: "site.com", Text: "t"})
	before := *user.Clone()
	time.Sleep(time.Millisecond)

	err = user.Apply(UserPatch{Name: strPtr("X")})
	require.NoError(t, err)

	assert.Equal(t, "X", user.Name)
	assert.Equal(t, before.Email, user.Email)
	assert.Equal(t, before.Role, user.Role)
	assert.Equal(t, before.PasswordSecret, user.PasswordSecret)
	assert.Equal(t, before.Credentials, user.Credentials)
	assert.Equal(t, before.CreatedAt, user.CreatedAt)
	assert.True(t, user.UpdatedAt.After(before.UpdatedAt))
}

func TestUserApplyRejectsInvalidResult(t *testing.T) {
	user, err := NewUser("a@x.com", "s", "A", RoleUser)
	require.NoError(t, err)
	bad := Role("owner")

	err = user.Apply(UserPatch{Name: strPtr("B"), Role: &bad})
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Equal(t, "A", user.Name, "user must be unchanged after a failed apply")
	assert.Equal(t, RoleUser, user.Role)
}

func TestUserPatchIsEmpty(t *testing.T) {
	assert.True(t, UserPatch{}.IsEmpty())
	assert.False(t, UserPatch{Email: strPtr("b@x.com")}.IsEmpty())
	assert.False(t, UserPatch{PasswordSecret: strPtr("h")}.IsEmpty())
}

func TestUserCloneIsDeep(t *testing.T) {
	user, err := NewUser("a@x.com", "s", "A", RoleUser)
	require.NoError(t, err)
	c := user.AddCredential(CredentialInput{Website: "w"})

	clone := user.Clone()
	clone.Credentials[0].Website = "changed"
	clone.Name = "changed"

	got, ok := user.Credential(c.ID)
	require.True(t, ok)
	assert.Equal(t, "w", got.Website)
	assert.Equal(t, "A", user.Name)

	var nilUser *User
	assert.Nil(t, nilUser.Clone())
}
