package mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phrazzld/keyring-api/internal/domain"
	"github.com/phrazzld/keyring-api/internal/service"
	"github.com/phrazzld/keyring-api/internal/store"
)

// ErrNotConfigured is returned by MockUserService methods without a function field.
var ErrNotConfigured = errors.New("mock method not configured")

// MockUserService implements service.UserService with function fields.
type MockUserService struct {
	CreateUserFn       func(ctx context.Context, params service.CreateUserParams) (*domain.User, error)
	QueryUsersFn       func(ctx context.Context, filter store.UserFilter, opts store.QueryOptions) (*store.UserPage, error)
	GetUserByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmailFn   func(ctx context.Context, email string) (*domain.User, error)
	UpdateUserFn       func(ctx context.Context, id uuid.UUID, params service.UpdateUserParams) (*domain.User, error)
	AddCredentialFn    func(ctx context.Context, userID uuid.UUID, in domain.CredentialInput) (*domain.User, error)
	DeleteUserFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetCredentialFn    func(ctx context.Context, userID, credentialID uuid.UUID) (*domain.Credential, error)
	UpdateCredentialFn func(
		ctx context.Context,
		userID, credentialID uuid.UUID,
		patch domain.CredentialPatch,
	) (*domain.User, error)
	DeleteCredentialFn func(ctx context.Context, userID, credentialID uuid.UUID) (*domain.Credential, error)
}

var _ service.UserService = (*MockUserService)(nil)

// CreateUser implements service.UserService.
func (m *MockUserService) CreateUser(ctx context.Context, params service.CreateUserParams) (*domain.User, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, params)
	}
	return nil, ErrNotConfigured
}

// QueryUsers implements service.UserService.
func (m *MockUserService) QueryUsers(
	ctx context.Context,
	filter store.UserFilter,
	opts store.QueryOptions,
) (*store.UserPage, error) {
	if m.QueryUsersFn != nil {
		return m.QueryUsersFn(ctx, filter, opts)
	}
	return nil, ErrNotConfigured
}

// GetUserByID implements service.UserService.
func (m *MockUserService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetUserByIDFn != nil {
		return m.GetUserByIDFn(ctx, id)
	}
	return nil, ErrNotConfigured
}

// GetUserByEmail implements service.UserService.
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetUserByEmailFn != nil {
		return m.GetUserByEmailFn(ctx, email)
	}
	return nil, ErrNotConfigured
}

// UpdateUser implements service.UserService.
func (m *MockUserService) UpdateUser(
	ctx context.Context,
	id uuid.UUID,
	params service.UpdateUserParams,
) (*domain.User, error) {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, id, params)
	}
	return nil, ErrNotConfigured
}

// AddCredential implements service.UserService.
func (m *MockUserService) AddCredential(
	ctx context.Context,
	userID uuid.UUID,
	in domain.CredentialInput,
) (*domain.User, error) {
	if m.AddCredentialFn != nil {
		return m.AddCredentialFn(ctx, userID, in)
	}
	return nil, ErrNotConfigured
}

// DeleteUser implements service.UserService.
func (m *MockUserService) DeleteUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, id)
	}
	return nil, ErrNotConfigured
}

// GetCredential implements service.UserService.
func (m *MockUserService) GetCredential(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (*domain.Credential, error) {
	if m.GetCredentialFn != nil {
		return m.GetCredentialFn(ctx, userID, credentialID)
	}
	return nil, ErrNotConfigured
}

// UpdateCredential implements service.UserService.
func (m *MockUserService) UpdateCredential(
	ctx context.Context,
	userID, credentialID uuid.UUID,
	patch domain.CredentialPatch,
) (*domain.User, error) {
	if m.UpdateCredentialFn != nil {
		return m.UpdateCredentialFn(ctx, userID, credentialID, patch)
	}
	return nil, ErrNotConfigured
}

// DeleteCredential implements service.UserService.
func (m *MockUserService) DeleteCredential(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (*domain.Credential, error) {
	if m.DeleteCredentialFn != nil {
		return m.DeleteCredentialFn(ctx, userID, credentialID)
	}
	return nil, ErrNotConfigured
}
