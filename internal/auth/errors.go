package auth

import "errors"

var (
	// ErrProviderNotConfigured is returned when a login is attempted for a
	// registered provider whose client id/secret or endpoints are missing.
	ErrProviderNotConfigured = errors.New("provider is not configured")

	// ErrDevLoginDisabled is returned when the dev login endpoint is used
	// while the config toggle is off.
	ErrDevLoginDisabled = errors.New("dev login is disabled")

	// ErrEmailRequired is returned by dev login when no email was supplied.
	ErrEmailRequired = errors.New("email is required")

	// ErrMissingSubject is returned when a provider profile carries
	// neither a "sub" nor an "id" field, leaving no stable identity to
	// upsert against.
	ErrMissingSubject = errors.New("profile has no subject")
)
