package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/keyring-api/internal/api/shared"
	"github.com/phrazzld/keyring-api/internal/platform/logger"
	"github.com/phrazzld/keyring-api/internal/service"
	"github.com/phrazzld/keyring-api/internal/store"
)

// UserHandler serves the /users resource and the credentials nested in it.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if userService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("userService cannot be nil for UserHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// RegisterRoutes mounts the user and credential endpoints on r.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)

		r.Route("/{userId}", func(r chi.Router) {
			r.Get("/", h.GetUser)
			r.Patch("/", h.UpdateUser)
			r.Delete("/", h.DeleteUser)

			r.Post("/passwords", h.AddCredential)
			r.Get("/passwords/{passwordId}", h.GetCredential)
			r.Patch("/passwords/{passwordId}", h.UpdateCredential)
			r.Delete("/passwords/{passwordId}", h.DeleteCredential)
		})
	})
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req.params())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	log.Debug("user created", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q, err := parseListUsersQuery(r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(q); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.userService.QueryUsers(r.Context(), q.filter(), q.options())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pageToResponse(page))
}

// GetUser handles GET /users/{userId}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ids, ok := handlePathUUIDs(w, r, userIDParam)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}
	if user == nil {
		HandleAPIError(w, r, store.ErrUserNotFound, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// UpdateUser handles PATCH /users/{userId}. A body with a single-element
// passwords array appends that credential instead of updating the user.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ids, ok := handlePathUUIDs(w, r, userIDParam)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if req.addsCredential() {
		log.Debug("patch carries a credential, appending it",
			slog.String("user_id", ids[0].String()))
		// The email in the patch is not applied, but it may not name another user.
		if req.Email != nil {
			owner, err := h.userService.GetUserByEmail(r.Context(), *req.Email)
			if err != nil {
				HandleAPIError(w, r, err, "Failed to add password")
				return
			}
			if owner != nil && owner.ID != ids[0] {
				HandleAPIError(w, r, store.ErrEmailExists, "")
				return
			}
		}
		user, err := h.userService.AddCredential(r.Context(), ids[0], req.Passwords[0].input())
		if err != nil {
			HandleAPIError(w, r, err, "Failed to add password")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), ids[0], req.params())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// DeleteUser handles DELETE /users/{userId}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ids, ok := handlePathUUIDs(w, r, userIDParam)
	if !ok {
		return
	}

	if _, err := h.userService.DeleteUser(r.Context(), ids[0]); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeAndValidate decodes the JSON body into v and validates it. On failure
// an error response has already been written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}
