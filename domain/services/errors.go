package services

import "errors"

// Sentinel errors surfaced to the HTTP layer. Anything else coming out of a
// service is treated as a storage failure and must not leak driver detail.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrEmptyTitle      = errors.New("title is required")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidLogin    = errors.New("invalid email or password")
	ErrAccountDisabled = errors.New("account is disabled")
)
