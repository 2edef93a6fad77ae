package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/keyring-api/internal/domain"
)

// Path parameter names.
const (
	userIDParam     = "userId"
	passwordIDParam = "passwordId"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return uuid.Nil, domain.NewValidationError(strconv.Quote(paramName), "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(strconv.Quote(paramName), "must be a valid id", domain.ErrValidation)
	}
	return id, nil
}

// handlePathUUIDs extracts each named path parameter in order. On failure an
// error response has already been written and ok is false.
func handlePathUUIDs(w http.ResponseWriter, r *http.Request, names ...string) (ids []uuid.UUID, ok bool) {
	ids = make([]uuid.UUID, len(names))
	for i, name := range names {
		id, err := getPathUUID(r, name)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

var listQueryKeys = map[string]struct{}{
	"name": {}, "role": {}, "sortBy": {}, "limit": {}, "page": {},
}

// parseListUsersQuery reads GET /users query parameters. Unknown keys and
// non-integer limit or page values are rejected.
func parseListUsersQuery(values url.Values) (ListUsersQuery, error) {
	var q ListUsersQuery
	for key := range values {
		if _, ok := listQueryKeys[key]; !ok {
			return q, domain.NewValidationError(strconv.Quote(key), "is not allowed", domain.ErrValidation)
		}
	}

	if values.Has("name") {
		name := values.Get("name")
		q.Name = &name
	}
	if values.Has("role") {
		role := values.Get("role")
		q.Role = &role
	}
	q.SortBy = values.Get("sortBy")

	var err error
	if q.Limit, err = parseIntParam(values, "limit"); err != nil {
		return q, err
	}
	if q.Page, err = parseIntParam(values, "page"); err != nil {
		return q, err
	}
	return q, nil
}

func parseIntParam(values url.Values, key string) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(strconv.Quote(key), "must be an integer", domain.ErrValidation)
	}
	return n, nil
}
