package errors

import "errors"

var (
	ErrInvalidRequest         = errors.New("invalid verification request")
	ErrUnauthorized           = errors.New("caller lacks required permission")
	ErrAccountNotFound        = errors.New("account not found")
	ErrNotEligible            = errors.New("account does not meet eligibility requirements")
	ErrInvalidStateTransition = errors.New("verification status transition not allowed")
)
