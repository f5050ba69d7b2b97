package model

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("user does not exist")
	ErrUnauthorized = errors.New("unauthorized")
	ErrMissingToken = errors.New("missing authentication token")
	ErrInactiveUser = errors.New("user account is inactive")
	ErrForbidden    = errors.New("cannot access another user's data")

	/* Обе ошибки входа являются ErrUnauthorized для errors.Is */
	ErrInvalidEmail    = &credentialError{"invalid user email"}
	ErrInvalidPassword = &credentialError{"invalid user password"}
)

type credentialError struct {
	reason string
}

func (e *credentialError) Error() string { return e.reason }

func (e *credentialError) Unwrap() error { return ErrUnauthorized }

// DuplicateEntryError reports a unique constraint conflict on Field
// ("email" or "phone_number").
type DuplicateEntryError struct {
	Field string
}

func (e *DuplicateEntryError) Error() string {
	switch e.Field {
	case "email":
		return "Email already registered by another user."
	case "phone_number":
		return "Phone number already registered by another user."
	}
	return e.Field + " already registered by another user."
}

type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
