package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrEmailAlreadyExists = errors.New("auth: email already registered")
	ErrAccountDisabled    = errors.New("auth: account is disabled")
)
