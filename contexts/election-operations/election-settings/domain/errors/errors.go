package errors

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnauthorized   = errors.New("caller is not authorized")
	ErrInvalidWindow  = errors.New("window end precedes start")

	ErrSettingsNotFound = errors.New("settings record not found")
)
