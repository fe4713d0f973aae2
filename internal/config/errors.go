package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrJWTSecretTooShort error if config jwt.secret is shorter than 32 bytes.
	ErrJWTSecretTooShort = errors.New("toml config jwt.secret must be at least 32 bytes")

	// ErrEmptyRedirectBaseURL error if config oauth.redirectBaseUrl is empty.
	ErrEmptyRedirectBaseURL = errors.New("toml config oauth.redirectBaseUrl can not be empty")
)
