package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/keyring-api/internal/domain"
	"github.com/phrazzld/keyring-api/internal/store"
)

// MockUserStore implements store.UserStore for testing. Each method calls its
// function field when set and otherwise forwards to Delegate.
type MockUserStore struct {
	CreateFn       func(ctx context.Context, user *domain.User) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn   func(ctx context.Context, email string) (*domain.User, error)
	IsEmailTakenFn func(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	ListFn         func(ctx context.Context, filter store.UserFilter, opts store.QueryOptions) (*store.UserPage, error)
	SaveFn         func(ctx context.Context, user *domain.User) error
	DeleteFn       func(ctx context.Context, id uuid.UUID) error

	// Delegate serves every call without a function field. It must be set
	// unless every method the test reaches has a function field.
	Delegate store.UserStore
}

// NewMockUserStore creates a mock forwarding to delegate.
func NewMockUserStore(delegate store.UserStore) *MockUserStore {
	return &MockUserStore{Delegate: delegate}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements store.UserStore.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return m.Delegate.Create(ctx, user)
}

// GetByID implements store.UserStore.
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Delegate.GetByID(ctx, id)
}

// GetByEmail implements store.UserStore.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.Delegate.GetByEmail(ctx, email)
}

// IsEmailTaken implements store.UserStore.
func (m *MockUserStore) IsEmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	if m.IsEmailTakenFn != nil {
		return m.IsEmailTakenFn(ctx, email, excludeID)
	}
	return m.Delegate.IsEmailTaken(ctx, email, excludeID)
}

// List implements store.UserStore.
func (m *MockUserStore) List(
	ctx context.Context,
	filter store.UserFilter,
	opts store.QueryOptions,
) (*store.UserPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, opts)
	}
	return m.Delegate.List(ctx, filter, opts)
}

// Save implements store.UserStore.
func (m *MockUserStore) Save(ctx context.Context, user *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, user)
	}
	return m.Delegate.Save(ctx, user)
}

// Delete implements store.UserStore.
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Delegate.Delete(ctx, id)
}
