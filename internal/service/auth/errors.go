package auth

import "errors"

// ErrPasswordMismatch indicates that a plaintext password does not match a stored secret.
var ErrPasswordMismatch = errors.New("password does not match")
