// Package session implements the endpoint returning the claims of the
// current bearer token. The token itself is validated by the auth
// middleware, this handler only renders the claims it stored.
package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/authrelay/authrelay/internal/auth"
	"github.com/authrelay/authrelay/internal/config"
	"github.com/authrelay/authrelay/internal/web/handler"
	authmw "github.com/authrelay/authrelay/internal/web/middleware/auth"
)

// Path is the path of the session endpoint.
const Path = handler.AuthBasePath + "/session"

// Service is the session handler service.
type Service struct {
	cfg *config.Config
}

// Handler is the session handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the session handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *auth.Service) error {
	if app == nil || cfg == nil || svc == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.cfg = cfg

	app.Get(Path, s.Get)

	return nil
}

// Get renders the claims of the validated bearer token.
func (s *Service) Get(c *fiber.Ctx) error {
	claims, ok := authmw.ClaimsFromCtx(c)
	if !ok {
		// the middleware rejects unauthenticated requests before this
		// handler runs, so a missing claims entry is a wiring error
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing_authorization"})
	}

	return c.JSON(fiber.Map{
		"subject":   claims.Subject(),
		"email":     claims["email"],
		"name":      claims["name"],
		"avatarUrl": claims["avatarUrl"],
		"roles":     claims.Roles(),
		"expiresAt": claims.ExpiresAt().UTC().Format(time.RFC3339),
	})
}
