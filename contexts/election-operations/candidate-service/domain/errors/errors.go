package errors

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrUnauthorized      = errors.New("caller is not authorized")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrInvalidPosition   = errors.New("invalid candidate position")
)
