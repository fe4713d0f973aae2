package token

import "errors"

var (
	// ErrSecretTooShort is returned by New when the signing secret is
	// shorter than MinSecretLen bytes.
	ErrSecretTooShort = errors.New("jwt secret must be at least 32 bytes")

	// ErrInvalidSignature is returned when a token's MAC does not verify
	// or the token is not a parseable compact JWS.
	ErrInvalidSignature = errors.New("token signature is invalid")

	// ErrExpired is returned when a token's expiry has passed.
	ErrExpired = errors.New("token is expired")

	// ErrIssuerMismatch is returned when an issuer is configured but the
	// token carries a different issuer or none at all.
	ErrIssuerMismatch = errors.New("token issuer mismatch")
)
