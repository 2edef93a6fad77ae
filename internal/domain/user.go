package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level assigned to a user account.
type Role string

// Known roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the account aggregate root. It exclusively owns its Credentials:
// they are persisted inside the user document and have no lifecycle of their own.
type User struct {
	ID    uuid.UUID
	Email string
	Name  string
	Role  Role

	// PasswordSecret is opaque to the domain. The service stores whatever its
	// hasher produced; it is never serialized to clients.
	PasswordSecret string

	// Credentials preserves insertion order.
	Credentials []Credential

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a new User with a fresh ID, an empty credential list and
// creation/update timestamps set to now.
// Returns an error if validation fails.
func NewUser(email, passwordSecret, name string, role Role) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Email:          email,
		Name:           name,
		Role:           role,
		PasswordSecret: passwordSecret,
		Credentials:    []Credential{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks that the required scalar fields of the User are present.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if u.Name == "" {
		return ErrEmptyName
	}
	if !u.Role.Valid() {
		return NewValidationError("role", "must be one of user, admin", ErrInvalidRole)
	}
	if u.PasswordSecret == "" {
		return ErrEmptyPassword
	}
	return nil
}

// UserPatch enumerates the mutable scalar fields of a User. Nil fields are
// left untouched by Apply.
type UserPatch struct {
	Email *string
	Name  *string
	Role  *Role

	// PasswordSecret must already be protected by the caller.
	PasswordSecret *string
}

// IsEmpty reports whether the patch carries no fields.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.Name == nil && p.Role == nil && p.PasswordSecret == nil
}

// Apply overwrites every present field of the patch onto the user and bumps
// UpdatedAt. The resulting user is validated before Apply returns; on failure
// the user is left unchanged.
func (u *User) Apply(p UserPatch) error {
	next := *u
	if p.Email != nil {
		next.Email = *p.Email
	}
	if p.Name != nil {
		next.Name = *p.Name
	}
	if p.Role != nil {
		next.Role = *p.Role
	}
	if p.PasswordSecret != nil {
		next.PasswordSecret = *p.PasswordSecret
	}
	if err := next.Validate(); err != nil {
		return err
	}

	next.UpdatedAt = time.Now().UTC()
	*u = next
	return nil
}

// Clone returns a deep copy of the user, including its credential list.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Credentials = make([]Credential, len(u.Credentials))
	copy(c.Credentials, u.Credentials)
	return &c
}
