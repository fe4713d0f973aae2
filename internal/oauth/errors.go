package oauth

import "errors"

var (
	// ErrUnknownProvider is returned by the registry when no client was
	// registered for the requested name. Distinct from "registered but not
	// configured", which surfaces later via Client.Configured.
	ErrUnknownProvider = errors.New("unknown oauth provider")

	// ErrTokenExchangeFailed is returned when the token endpoint responds
	// with a non-2xx status, an empty body, or is unreachable.
	ErrTokenExchangeFailed = errors.New("token exchange failed")

	// ErrMissingAccessToken is returned by FetchUserInfo when the token
	// response carries no access token.
	ErrMissingAccessToken = errors.New("missing access token")

	// ErrUserInfoFailed is returned when the userinfo endpoint responds
	// with a non-2xx status or an unparseable body.
	ErrUserInfoFailed = errors.New("userinfo fetch failed")
)
