package domain

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already registered")

	// ErrBillNotFound also covers mutations that affected no rows, such as
	// an access-policy silently rejecting a delete.
	ErrBillNotFound  = errors.New("bill not found")
	ErrDuplicateBill = errors.New("bill already exists for this installation and month")
	ErrNoFiles       = errors.New("no files uploaded")
	ErrExtraction    = errors.New("bill extraction failed")
)
