package service

import "errors"

var (
	// ErrInvalidDataProvided is wrapped together with the description of the
	// rule the request broke, e.g. "invalid data provided: message is required".
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword is returned by login for an unknown username as well as
	// for a wrong password, so callers cannot probe for existing accounts.
	ErrWrongPassword = errors.New("invalid username or password")

	// ErrUnauthorized is returned when a bearer token is missing or unknown.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when an authenticated user may not act on a resource.
	ErrForbidden = errors.New("forbidden")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
