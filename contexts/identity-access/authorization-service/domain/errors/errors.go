package errors

import "errors"

var (
	ErrInvalidPermission   = errors.New("invalid permission")
	ErrInvalidAccountID    = errors.New("invalid account id")
	ErrInvalidRoleName     = errors.New("invalid role name")
	ErrRoleNotFound        = errors.New("role not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrRoleAlreadyAssigned = errors.New("role already assigned")
	ErrRoleNotAssigned     = errors.New("role not assigned")
	ErrUnauthorized        = errors.New("caller lacks required permission")
)
