package errors

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid registration request")
	ErrEmailTaken      = errors.New("email already registered")
	ErrNotEligible     = errors.New("age must be between 15 and 30")
	ErrMissingDocument = errors.New("both ID document sides are required")

	ErrRegistrationClosed = errors.New("registration is closed")
)
