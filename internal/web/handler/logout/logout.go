// Package logout implements the stateless logout endpoint. Tokens are
// not tracked server side, so logging out means the client discards its
// token. The endpoint exists so clients have a uniform call to finish a
// session.
package logout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/authrelay/authrelay/internal/auth"
	"github.com/authrelay/authrelay/internal/config"
	"github.com/authrelay/authrelay/internal/web/handler"
)

// Path is the path of the logout endpoint.
const Path = handler.AuthBasePath + "/logout"

// Service is the logout handler service.
type Service struct {
	cfg *config.Config
}

// Handler is the logout handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *auth.Service) error {
	if app == nil || cfg == nil || svc == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.cfg = cfg

	app.Post(Path, s.Logout)

	return nil
}

// Logout acknowledges the logout. There is no server side session or
// revocation list to clean up.
func (s *Service) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "logged out, discard the token on the client",
	})
}
