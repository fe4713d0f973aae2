// Package daemon wires the process: token codec, provider registry, user
// store, login orchestrator and the web service.
package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/authrelay/authrelay/internal/auth"
	"github.com/authrelay/authrelay/internal/config"
	"github.com/authrelay/authrelay/internal/oauth"
	"github.com/authrelay/authrelay/internal/token"
	"github.com/authrelay/authrelay/internal/user"
	"github.com/authrelay/authrelay/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start runs the web service until a shutdown signal arrives.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	codec, err := token.New(token.Config{
		Secret:            cfg.JWT.Secret,
		Issuer:            cfg.JWT.Issuer,
		ExpirationSeconds: cfg.JWT.ExpirationSeconds,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("token codec init failed")
		return nil
	}

	registry := oauth.NewRegistry(cfg.OAuth.Providers)

	authService := auth.NewService(
		registry,
		user.NewStore(),
		codec,
		cfg.OAuth.RedirectBaseURL,
		cfg.OAuth.DevLoginEnabled,
	)

	if cfg.OAuth.DevLoginEnabled {
		log.Warn().Msg("dev login is enabled, do not run this in production")
	}

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, authService, codec),
	}
}
