package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/keyring-api/internal/api/shared"
	"github.com/phrazzld/keyring-api/internal/domain"
	"github.com/phrazzld/keyring-api/internal/store"
)

// MapErrorToStatusCode maps service and store errors onto HTTP status codes.
// Anything unrecognised is a 500.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case store.IsNotFoundError(err),
		errors.Is(err, domain.ErrCredentialNotFound):
		return http.StatusNotFound

	// Email conflicts are reported as bad requests, not 409.
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusBadRequest

	case errors.As(err, &verrs),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyUserID),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrEmptyPatch),
		errors.Is(err, store.ErrInvalidEntity),
		isDecodeError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes raw error text from stores or drivers.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var verrs validator.ValidationErrors
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, domain.ErrCredentialNotFound):
		return "Password not found"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already taken"

	case errors.As(err, &verrs):
		return SanitizeValidationError(verrs)
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrEmptyUserID),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrEmptyPatch):
		return err.Error()
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case isDecodeError(err):
		return "Invalid request body"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns the first failed rule into a short message
// naming the JSON field, e.g. `"email" must be a valid email`.
func SanitizeValidationError(verrs validator.ValidationErrors) string {
	if len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	field := fe.Field()
	if ns := fe.Namespace(); strings.Count(ns, ".") > 1 {
		// Keep the path below the top-level struct for nested fields.
		field = ns[strings.Index(ns, ".")+1:]
	}
	return fmt.Sprintf("%q %s", field, validationTagMessage(fe))
}

func validationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "password":
		return "must be at least 8 characters and contain at least one letter and one number"
	case "oneof":
		return "must be one of [" + strings.ReplaceAll(fe.Param(), " ", ", ") + "]"
	case "len":
		return "must contain exactly " + fe.Param() + " item"
	case "min":
		return "must not be empty"
	case "uuid4", "uuid":
		return "must be a valid id"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	default:
		return "is invalid"
	}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, shared.ErrEmptyBody) ||
		errors.Is(err, shared.ErrTrailingData) ||
		strings.HasPrefix(err.Error(), "json: unknown field")
}

// HandleAPIError writes the status and safe message for err. A non-empty
// message overrides the default for 500 responses only.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	safe := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && message != "" {
		safe = message
	}
	shared.RespondWithErrorAndLog(w, r, status, safe, err)
}
