package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes caps the size of a JSON request body.
const MaxBodyBytes = 1 << 20

// Errors returned by DecodeJSON besides those of encoding/json.
var (
	ErrEmptyBody    = errors.New("request body is empty")
	ErrTrailingData = errors.New("request body must contain a single JSON object")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("password", validatePassword); err != nil {
		// ALLOW-PANIC: tag registration only fails on programmer error
		panic(err)
	}
	return v
}

// validatePassword accepts at least 8 characters with one letter and one digit.
func validatePassword(fl validator.FieldLevel) bool {
	return IsValidPassword(fl.Field().String())
}

// IsValidPassword reports whether pw satisfies the account password rule.
func IsValidPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

// DecodeJSON decodes the request body into v. Unknown fields and trailing
// data are rejected.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if dec.More() {
		return ErrTrailingData
	}
	return nil
}

// ValidateRequest validates v with its validate struct tags, then with its
// own Validate method if it has one.
func ValidateRequest(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return err
	}
	if custom, ok := v.(interface{ Validate() error }); ok {
		return custom.Validate()
	}
	return nil
}
