package api

import (
	"github.com/phrazzld/keyring-api/internal/domain"
	"github.com/phrazzld/keyring-api/internal/service"
	"github.com/phrazzld/keyring-api/internal/store"
)

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=user admin"`
}

func (req CreateUserRequest) params() service.CreateUserParams {
	return service.CreateUserParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.Role(req.Role),
	}
}

// UpdateUserRequest is the body of PATCH /users/{userId}. A body carrying a
// passwords array appends that single credential and ignores every other
// field.
type UpdateUserRequest struct {
	Email     *string             `json:"email"     validate:"omitnil,email"`
	Password  *string             `json:"password"  validate:"omitnil,password"`
	Name      *string             `json:"name"      validate:"omitnil,min=1"`
	Role      *string             `json:"role"      validate:"omitnil,oneof=user admin"`
	Passwords []CredentialRequest `json:"passwords" validate:"omitempty,len=1,dive"`
}

// Validate requires at least one field.
func (req UpdateUserRequest) Validate() error {
	if req.Passwords == nil && req.params().IsEmpty() {
		return domain.ErrEmptyPatch
	}
	return nil
}

// addsCredential reports whether the request is the credential-append form.
func (req UpdateUserRequest) addsCredential() bool {
	return len(req.Passwords) == 1
}

func (req UpdateUserRequest) params() service.UpdateUserParams {
	p := service.UpdateUserParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		p.Role = &role
	}
	return p
}

// CredentialRequest is the body of POST /users/{userId}/passwords and of
// PATCH /users/{userId}/passwords/{passwordId}.
type CredentialRequest struct {
	Website *string `json:"website"`
	Text    *string `json:"text"`
}

func (req CredentialRequest) input() domain.CredentialInput {
	var in domain.CredentialInput
	if req.Website != nil {
		in.Website = *req.Website
	}
	if req.Text != nil {
		in.Text = *req.Text
	}
	return in
}

func (req CredentialRequest) patch() domain.CredentialPatch {
	return domain.CredentialPatch{Website: req.Website, Text: req.Text}
}

// ListUsersQuery holds the query string of GET /users.
type ListUsersQuery struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"   validate:"omitnil,oneof=user admin"`
	SortBy string  `json:"sortBy"`
	Limit  int     `json:"limit"`
	Page   int     `json:"page"`
}

func (q ListUsersQuery) filter() store.UserFilter {
	f := store.UserFilter{Name: q.Name}
	if q.Role != nil {
		role := domain.Role(*q.Role)
		f.Role = &role
	}
	return f
}

func (q ListUsersQuery) options() store.QueryOptions {
	return store.QueryOptions{SortBy: q.SortBy, Limit: q.Limit, Page: q.Page}
}

// CredentialResponse is the wire form of a stored credential.
type CredentialResponse struct {
	ID      string `json:"id"`
	Website string `json:"website"`
	Text    string `json:"text"`
}

// UserResponse is the wire form of a user. The password secret never leaves
// the service.
type UserResponse struct {
	ID        string               `json:"id"`
	Email     string               `json:"email"`
	Name      string               `json:"name"`
	Role      string               `json:"role"`
	Passwords []CredentialResponse `json:"passwords"`
}

// UserPageResponse is the body of GET /users.
type UserPageResponse struct {
	Results      []UserResponse `json:"results"`
	Page         int            `json:"page"`
	Limit        int            `json:"limit"`
	TotalPages   int            `json:"totalPages"`
	TotalResults int            `json:"totalResults"`
}

func credentialToResponse(c domain.Credential) CredentialResponse {
	return CredentialResponse{ID: c.ID.String(), Website: c.Website, Text: c.Text}
}

func userToResponse(u *domain.User) UserResponse {
	passwords := make([]CredentialResponse, len(u.Credentials))
	for i, c := range u.Credentials {
		passwords[i] = credentialToResponse(c)
	}
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Passwords: passwords,
	}
}

func pageToResponse(p *store.UserPage) UserPageResponse {
	results := make([]UserResponse, len(p.Results))
	for i, u := range p.Results {
		results[i] = userToResponse(u)
	}
	return UserPageResponse{
		Results:      results,
		Page:         p.Page,
		Limit:        p.Limit,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
	}
}
