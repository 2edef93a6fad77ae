package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/keyring-api/internal/domain"
)

// UserStore defines the interface for user document persistence.
// Implementations copy documents in and out: callers never share memory with
// stored state.
type UserStore interface {
	// Create inserts a new user document.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their exact email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// IsEmailTaken reports whether a user other than excludeID owns email.
	// Pass uuid.Nil to consider every user.
	IsEmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	// List returns one page of users matching filter.
	// opts must already be normalized.
	List(ctx context.Context, filter UserFilter, opts QueryOptions) (*UserPage, error)

	// Save replaces the stored document of an existing user, credentials included.
	// Returns ErrUserNotFound if the user does not exist and ErrEmailExists if
	// the new email belongs to another user.
	Save(ctx context.Context, user *domain.User) error

	// Delete removes a user document and with it every embedded credential.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
