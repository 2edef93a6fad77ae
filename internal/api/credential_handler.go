package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/keyring-api/internal/api/shared"
	"github.com/phrazzld/keyring-api/internal/domain"
	"github.com/phrazzld/keyring-api/internal/platform/logger"
)

// AddCredential handles POST /users/{userId}/passwords
func (h *UserHandler) AddCredential(w http.ResponseWriter, r *http.Request) {
	ids, ok := handlePathUUIDs(w, r, userIDParam)
	if !ok {
		return
	}

	var req CredentialRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.AddCredential(r.Context(), ids[0], req.input())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add password")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// GetCredential handles GET /users/{userId}/passwords/{passwordId}
func (h *UserHandler) GetCredential(w http.ResponseWriter, r *http.Request) {
	ids, ok := handlePathUUIDs(w, r, userIDParam, passwordIDParam)
	if !ok {
		return
	}

	cred, err := h.userService.GetCredential(r.Context(), ids[0], ids[1])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get password")
		return
	}
	if cred == nil {
		HandleAPIError(w, r, domain.ErrCredentialNotFound, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, credentialToResponse(*cred))
}

// UpdateCredential handles PATCH /users/{userId}/passwords/{passwordId}
func (h *UserHandler) UpdateCredential(w http.ResponseWriter, r *http.Request) {
	ids, ok := handlePathUUIDs(w, r, userIDParam, passwordIDParam)
	if !ok {
		return
	}

	var req CredentialRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	patch := req.patch()
	if patch.IsEmpty() {
		HandleAPIError(w, r, domain.ErrEmptyPatch, "")
		return
	}

	user, err := h.userService.UpdateCredential(r.Context(), ids[0], ids[1], patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update password")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// DeleteCredential handles DELETE /users/{userId}/passwords/{passwordId}
func (h *UserHandler) DeleteCredential(w http.ResponseWriter, r *http.Request) {
	ids, ok := handlePathUUIDs(w, r, userIDParam, passwordIDParam)
	if !ok {
		return
	}

	removed, err := h.userService.DeleteCredential(r.Context(), ids[0], ids[1])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete password")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("credential removed",
		slog.String("user_id", ids[0].String()),
		slog.String("credential_id", removed.ID.String()))
	w.WriteHeader(http.StatusNoContent)
}
