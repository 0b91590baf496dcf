// Package service provides business logic for the application.
package service

import "errors"

// Service errors. Handlers map these onto the HTTP error taxonomy:
// not-found, forbidden, conflict, and validation failures.
var (
	ErrToolNotFound        = errors.New("tool not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrNotOwner            = errors.New("caller does not own this tool")
	ErrNotAssigned         = errors.New("caller is not assigned to this tool")
	ErrAlreadyAssigned     = errors.New("user already assigned to this tool")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrNameRequired        = errors.New("tool name is required")
	ErrInvalidPrice        = errors.New("price must not be negative")
	ErrInvalidBillingCycle = errors.New("billing cycle must be monthly or annually")
)
