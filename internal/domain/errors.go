package domain

import "errors"

var (
	ErrViewNotFound  = errors.New("view not found")
	ErrActionPending = errors.New("action already in progress")
	ErrUnknownField  = errors.New("unknown form field")
	ErrInvalidStatus = errors.New("invalid status")
	ErrValidation    = errors.New("validation failed")
)
