package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/keyring-api/internal/domain"
	"github.com/phrazzld/keyring-api/internal/platform/logger"
	"github.com/phrazzld/keyring-api/internal/service/auth"
	"github.com/phrazzld/keyring-api/internal/store"
)

// CreateUserParams carries the fields of a new account. Password is plaintext
// and is hashed before the user is persisted.
type CreateUserParams struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// UpdateUserParams enumerates the scalar fields UpdateUser may overwrite.
// Nil fields are left untouched; Password is plaintext.
type UpdateUserParams struct {
	Email    *string
	Password *string
	Name     *string
	Role     *domain.Role
}

// IsEmpty reports whether no field is present.
func (p UpdateUserParams) IsEmpty() bool {
	return p.Email == nil && p.Password == nil && p.Name == nil && p.Role == nil
}

// UserService manages user accounts and the credentials embedded in them.
type UserService interface {
	// CreateUser persists a new user with an empty credential list.
	// Returns store.ErrEmailExists if the email is already taken.
	CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error)

	// QueryUsers returns one page of users matching filter. Non-positive
	// Limit and Page fall back to 10 and 1.
	QueryUsers(ctx context.Context, filter store.UserFilter, opts store.QueryOptions) (*store.UserPage, error)

	// GetUserByID returns (nil, nil) when no user has the given id.
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetUserByEmail returns (nil, nil) when no user has the given email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateUser overwrites the present scalar fields of a user.
	// Returns store.ErrUserNotFound or store.ErrEmailExists.
	UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*domain.User, error)

	// AddCredential appends one credential to a user and returns the updated user.
	// Returns store.ErrUserNotFound.
	AddCredential(ctx context.Context, userID uuid.UUID, in domain.CredentialInput) (*domain.User, error)

	// DeleteUser removes a user with all its credentials and returns the removed user.
	// Returns store.ErrUserNotFound.
	DeleteUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetCredential returns store.ErrUserNotFound when the user is missing and
	// (nil, nil) when the user exists but holds no such credential.
	GetCredential(ctx context.Context, userID, credentialID uuid.UUID) (*domain.Credential, error)

	// UpdateCredential overwrites the present fields of one credential and
	// returns the updated user.
	// Returns store.ErrUserNotFound or domain.ErrCredentialNotFound.
	UpdateCredential(
		ctx context.Context,
		userID, credentialID uuid.UUID,
		patch domain.CredentialPatch,
	) (*domain.User, error)

	// DeleteCredential removes one credential and returns it.
	// Returns store.ErrUserNotFound or domain.ErrCredentialNotFound.
	DeleteCredential(ctx context.Context, userID, credentialID uuid.UUID) (*domain.Credential, error)
}

// UserServiceImpl implements UserService on top of a store.UserStore.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	log *slog.Logger,
) *UserServiceImpl {
	if log == nil {
		log = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		logger:    log.With(slog.String("component", "user_service")),
	}
}

// CreateUser implements UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if params.Password == "" {
		return nil, domain.ErrEmptyPassword
	}

	taken, err := s.userStore.IsEmailTaken(ctx, params.Email, uuid.Nil)
	if err != nil {
		log.Error("failed to check email availability", slog.String("error", err.Error()))
		return nil, err
	}
	if taken {
		log.Debug("attempted to create user with existing email")
		return nil, store.ErrEmailExists
	}

	secret, err := s.hasher.Hash(params.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}

	user, err := domain.NewUser(params.Email, secret, params.Name, params.Role)
	if err != nil {
		log.Debug("rejected invalid user", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("email claimed concurrently", slog.String("user_id", user.ID.String()))
		} else {
			log.Error("failed to save user", slog.String("error", err.Error()))
		}
		return nil, err
	}

	log.Info("user created", slog.String("user_id", user.ID.String()))
	return user, nil
}

// QueryUsers implements UserService.
func (s *UserServiceImpl) QueryUsers(
	ctx context.Context,
	filter store.UserFilter,
	opts store.QueryOptions,
) (*store.UserPage, error) {
	page, err := s.userStore.List(ctx, filter, opts.Normalize())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query users",
			slog.String("error", err.Error()))
		return nil, err
	}
	return page, nil
}

// GetUserByID implements UserService.
func (s *UserServiceImpl) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}
	return user, nil
}

// GetUserByEmail implements UserService.
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user by email",
			slog.String("error", err.Error()))
		return nil, err
	}
	return user, nil
}

// UpdateUser implements UserService.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	id uuid.UUID,
	params UpdateUserParams,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", id.String()))

	if params.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Email != nil && *params.Email != user.Email {
		taken, err := s.userStore.IsEmailTaken(ctx, *params.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			log.Debug("attempted to update to an existing email")
			return nil, store.ErrEmailExists
		}
	}

	patch := domain.UserPatch{
		Email: params.Email,
		Name:  params.Name,
		Role:  params.Role,
	}
	if params.Password != nil {
		if *params.Password == "" {
			return nil, domain.ErrEmptyPassword
		}
		secret, err := s.hasher.Hash(*params.Password)
		if err != nil {
			log.Error("failed to hash password", slog.String("error", err.Error()))
			return nil, err
		}
		patch.PasswordSecret = &secret
	}

	if err := user.Apply(patch); err != nil {
		log.Debug("rejected invalid user update", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.save(ctx, log, user); err != nil {
		return nil, err
	}

	log.Info("user updated")
	return user, nil
}

// AddCredential implements UserService.
func (s *UserServiceImpl) AddCredential(
	ctx context.Context,
	userID uuid.UUID,
	in domain.CredentialInput,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	c := user.AddCredential(in)
	if err := s.save(ctx, log, user); err != nil {
		return nil, err
	}

	log.Info("credential added", slog.String("credential_id", c.ID.String()))
	return user, nil
}

// DeleteUser implements UserService.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", id.String()))

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.Delete(ctx, id); err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to delete user", slog.String("error", err.Error()))
		}
		return nil, err
	}

	log.Info("user deleted", slog.Int("credentials_removed", len(user.Credentials)))
	return user, nil
}

// GetCredential implements UserService.
func (s *UserServiceImpl) GetCredential(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (*domain.Credential, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	c, ok := user.Credential(credentialID)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// UpdateCredential implements UserService.
func (s *UserServiceImpl) UpdateCredential(
	ctx context.Context,
	userID, credentialID uuid.UUID,
	patch domain.CredentialPatch,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("credential_id", credentialID.String()))

	if patch.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := user.UpdateCredential(credentialID, patch); err != nil {
		log.Debug("credential not found for update")
		return nil, err
	}

	if err := s.save(ctx, log, user); err != nil {
		return nil, err
	}

	log.Info("credential updated")
	return user, nil
}

// DeleteCredential implements UserService.
func (s *UserServiceImpl) DeleteCredential(
	ctx context.Context,
	userID, credentialID uuid.UUID,
) (*domain.Credential, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("credential_id", credentialID.String()))

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	removed, err := user.RemoveCredential(credentialID)
	if err != nil {
		log.Debug("credential not found for deletion")
		return nil, err
	}

	if err := s.save(ctx, log, user); err != nil {
		return nil, err
	}

	log.Info("credential deleted")
	return &removed, nil
}

// save persists the whole user document, logging unexpected failures.
func (s *UserServiceImpl) save(ctx context.Context, log *slog.Logger, user *domain.User) error {
	err := s.userStore.Save(ctx, user)
	if err == nil {
		return nil
	}
	if store.IsDuplicateError(err) || store.IsNotFoundError(err) {
		log.Debug("save rejected", slog.String("error", err.Error()))
	} else {
		log.Error("failed to save user", slog.String("error", err.Error()))
	}
	return err
}
