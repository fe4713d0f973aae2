package config

import (
	"github.com/authrelay/authrelay/internal/logger"
	"github.com/authrelay/authrelay/internal/oauth"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	Log       logger.Log
	Webserver Webserver
	JWT       JWT
	OAuth     OAuth
}

// Webserver implement webserver settings.
type Webserver struct {
	Port         int    // listening port for the webserver
	URL          string // base url for the webserver
	ShutDownTime int    // wait time for shutdown in seconds
}

// JWT holds the session token signing settings.
type JWT struct {
	// Secret is the HMAC-SHA256 signing key, at least 32 bytes.
	Secret string
	// Issuer is embedded and required in tokens when non-blank.
	Issuer string
	// ExpirationSeconds is the token TTL (default 3600).
	ExpirationSeconds int64
}

// OAuth holds the provider-facing settings of the relay.
type OAuth struct {
	// RedirectBaseURL is the externally reachable base URL callbacks are
	// computed from.
	RedirectBaseURL string
	// DevLoginEnabled toggles the development-only email login endpoint.
	DevLoginEnabled bool
	// Providers maps provider names to their static settings.
	Providers map[string]oauth.ProviderConfig
}
