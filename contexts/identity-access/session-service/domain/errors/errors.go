package errors

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid login request")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenExpired       = errors.New("token expired")
)
