package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"email":"a@x.com","password":"password1"}`, false},
		{"unknown field", `{"email":"a@x.com","extra":1}`, true},
		{"malformed", `{"email":`, true},
		{"trailing object", `{"email":"a@x.com"}{"email":"b@x.com"}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var got signupRequest
			err := DecodeJSON(req, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", got.Email)
		})
	}
}

func TestDecodeJSON_NoBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	var got signupRequest
	assert.ErrorIs(t, DecodeJSON(req, &got), ErrEmptyBody)
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("password1"))
	assert.True(t, IsValidPassword("1234567a"))
	assert.False(t, IsValidPassword("short1"))
	assert.False(t, IsValidPassword("password"))
	assert.False(t, IsValidPassword("12345678"))
}

type withCustom struct {
	Name string `json:"name" validate:"required"`
}

var errCustom = errors.New("custom rule")

func (w withCustom) Validate() error {
	if w.Name == "reserved" {
		return errCustom
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(signupRequest{Email: "bad", Password: "password1"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "email", verrs[0].Field())
	assert.Equal(t, "email", verrs[0].Tag())

	err = ValidateRequest(signupRequest{Email: "a@x.com", Password: "letters"})
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "password", verrs[0].Tag())

	assert.NoError(t, ValidateRequest(signupRequest{Email: "a@x.com", Password: "password1"}))

	assert.ErrorIs(t, ValidateRequest(withCustom{Name: "reserved"}), errCustom)
	assert.NoError(t, ValidateRequest(withCustom{Name: "ok"}))
}
