package domain

import (
	"time"

	"github.com/google/uuid"
)

// Credential is a named per-site secret embedded in exactly one User.
// Its ID is only unique within the parent's credential list.
type Credential struct {
	ID      uuid.UUID
	Website string
	Text    string
}

// CredentialInput describes a credential to append to a user.
type CredentialInput struct {
	Website string
	Text    string
}

// CredentialPatch enumerates the mutable fields of a Credential.
type CredentialPatch struct {
	Website *string
	Text    *string
}

// IsEmpty reports whether the patch carries no fields.
func (p CredentialPatch) IsEmpty() bool {
	return p.Website == nil && p.Text == nil
}

// AddCredential appends a new credential built from in and returns it.
// The assigned ID is distinct from every sibling's ID.
func (u *User) AddCredential(in CredentialInput) Credential {
	id := uuid.New()
	for u.credentialIndex(id) >= 0 {
		id = uuid.New()
	}

	c := Credential{
		ID:      id,
		Website: in.Website,
		Text:    in.Text,
	}
	u.Credentials = append(u.Credentials, c)
	u.UpdatedAt = time.Now().UTC()
	return c
}

// Credential returns a copy of the credential with the given ID.
// The boolean is false when no such credential exists.
func (u *User) Credential(id uuid.UUID) (Credential, bool) {
	i := u.credentialIndex(id)
	if i < 0 {
		return Credential{}, false
	}
	return u.Credentials[i], true
}

// UpdateCredential overwrites the present fields of p onto the credential with
// the given ID and returns its new value.
// Returns ErrCredentialNotFound if the user holds no such credential.
func (u *User) UpdateCredential(id uuid.UUID, p CredentialPatch) (Credential, error) {
	i := u.credentialIndex(id)
	if i < 0 {
		return Credential{}, ErrCredentialNotFound
	}

	c := &u.Credentials[i]
	if p.Website != nil {
		c.Website = *p.Website
	}
	if p.Text != nil {
		c.Text = *p.Text
	}
	u.UpdatedAt = time.Now().UTC()
	return *c, nil
}

// RemoveCredential deletes the credential with the given ID, keeping the order
// of the remaining credentials, and returns the removed value.
// Returns ErrCredentialNotFound if the user holds no such credential.
func (u *User) RemoveCredential(id uuid.UUID) (Credential, error) {
	i := u.credentialIndex(id)
	if i < 0 {
		return Credential{}, ErrCredentialNotFound
	}

	removed := u.Credentials[i]
	remaining := make([]Credential, 0, len(u.Credentials)-1)
	remaining = append(remaining, u.Credentials[:i]...)
	remaining = append(remaining, u.Credentials[i+1:]...)
	u.Credentials = remaining
	u.UpdatedAt = time.Now().UTC()
	return removed, nil
}

func (u *User) credentialIndex(id uuid.UUID) int {
	for i := range u.Credentials {
		if u.Credentials[i].ID == id {
			return i
		}
	}
	return -1
}
