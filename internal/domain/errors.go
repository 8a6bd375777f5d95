package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("not authorized")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidID      = errors.New("invalid id")
)
