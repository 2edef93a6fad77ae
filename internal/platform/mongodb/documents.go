package mongodb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/keyring-api/internal/domain"
	"github.com/phrazzld/keyring-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
)

type credentialDocument struct {
	ID      string `bson:"_id"`
	Website string `bson:"website"`
	Text    string `bson:"text"`
}

type userDocument struct {
	ID             string               `bson:"_id"`
	Email          string               `bson:"email"`
	Name           string               `bson:"name"`
	Role           string               `bson:"role"`
	PasswordSecret string               `bson:"passwordSecret"`
	Passwords      []credentialDocument `bson:"passwords"`
	CreatedAt      time.Time            `bson:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt"`
}

func toDocument(u *domain.User) userDocument {
	passwords := make([]credentialDocument, len(u.Credentials))
	for i, c := range u.Credentials {
		passwords[i] = credentialDocument{ID: c.ID.String(), Website: c.Website, Text: c.Text}
	}
	return userDocument{
		ID:             u.ID.String(),
		Email:          u.Email,
		Name:           u.Name,
		Role:           string(u.Role),
		PasswordSecret: u.PasswordSecret,
		Passwords:      passwords,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (d userDocument) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: user id %q: %v", store.ErrInvalidEntity, d.ID, err)
	}

	creds := make([]domain.Credential, len(d.Passwords))
	for i, p := range d.Passwords {
		cid, err := uuid.Parse(p.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: credential id %q: %v", store.ErrInvalidEntity, p.ID, err)
		}
		creds[i] = domain.Credential{ID: cid, Website: p.Website, Text: p.Text}
	}

	return &domain.User{
		ID:             id,
		Email:          d.Email,
		Name:           d.Name,
		Role:           domain.Role(d.Role),
		PasswordSecret: d.PasswordSecret,
		Credentials:    creds,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}, nil
}

func filterDocument(filter store.UserFilter) bson.D {
	doc := bson.D{}
	if filter.Name != nil {
		doc = append(doc, bson.E{Key: "name", Value: *filter.Name})
	}
	if filter.Role != nil {
		doc = append(doc, bson.E{Key: "role", Value: string(*filter.Role)})
	}
	return doc
}

// sortDocument ends with _id so pages are deterministic.
func sortDocument(keys []store.SortKey) bson.D {
	doc := make(bson.D, 0, len(keys)+1)
	for _, k := range keys {
		dir := 1
		if k.Desc {
			dir = -1
		}
		doc = append(doc, bson.E{Key: k.Field, Value: dir})
	}
	return append(doc, bson.E{Key: "_id", Value: 1})
}
