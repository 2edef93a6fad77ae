package mongodb

import (
	"testing"

	"github.com/phrazzld/keyring-api/internal/domain"
	"github.com/phrazzld/keyring-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDocumentRoundTrip(t *testing.T) {
	u, err := domain.NewUser("a@x.com", "hash", "Alice", domain.RoleAdmin)
	require.NoError(t, err)
	u.AddCredential(domain.CredentialInput{Website: "site.com", Text: "s3cret"})
	u.AddCredential(domain.CredentialInput{Website: "other.com"})

	doc := toDocument(u)
	assert.Equal(t, u.ID.String(), doc.ID)
	assert.Equal(t, "admin", doc.Role)
	require.Len(t, doc.Passwords, 2)
	assert.Equal(t, u.Credentials[0].ID.String(), doc.Passwords[0].ID)

	got, err := doc.toDomain()
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.PasswordSecret, got.PasswordSecret)
	assert.Equal(t, u.Credentials, got.Credentials)
}

func TestDocumentToDomain_InvalidIDs(t *testing.T) {
	_, err := userDocument{ID: "nope"}.toDomain()
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	u, err := domain.NewUser("a@x.com", "hash", "Alice", domain.RoleUser)
	require.NoError(t, err)
	doc := toDocument(u)
	doc.Passwords = []credentialDocument{{ID: "bad"}}
	_, err = doc.toDomain()
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestFilterDocument(t *testing.T) {
	assert.Empty(t, filterDocument(store.UserFilter{}))

	name := "Alice"
	role := domain.RoleAdmin
	got := filterDocument(store.UserFilter{Name: &name, Role: &role})
	assert.Equal(t, bson.D{
		{Key: "name", Value: "Alice"},
		{Key: "role", Value: "admin"},
	}, got)
}

func TestSortDocument(t *testing.T) {
	got := sortDocument([]store.SortKey{
		{Field: store.SortFieldRole, Desc: true},
		{Field: store.SortFieldName},
	})
	assert.Equal(t, bson.D{
		{Key: "role", Value: -1},
		{Key: "name", Value: 1},
		{Key: "_id", Value: 1},
	}, got)
}
