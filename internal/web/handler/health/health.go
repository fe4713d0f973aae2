// Package health implements the public health endpoint. Besides the
// liveness status it reports which providers carry complete credentials,
// which makes half-finished provider setups visible without watching the
// logs.
package health

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/authrelay/authrelay/internal/auth"
	"github.com/authrelay/authrelay/internal/config"
	"github.com/authrelay/authrelay/internal/web/handler"
)

// Path is the path of the health endpoint.
const Path = handler.AuthBasePath + "/health"

// Service is the health handler service.
type Service struct {
	cfg   *config.Config
	svc   *auth.Service
	alive func() bool
}

// Handler is the health handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the health handler. The alive func reports false while
// the server drains connections before shutdown, nil means always alive.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *auth.Service, alive func() bool) error {
	if app == nil || cfg == nil || svc == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.cfg = cfg
	s.svc = svc
	s.alive = alive

	app.Get(Path, s.Get)

	return nil
}

// Get renders the health status including per-provider readiness.
func (s *Service) Get(c *fiber.Ctx) error {
	status := "ok"
	httpStatus := fiber.StatusOK

	if s.alive != nil && !s.alive() {
		status = "shutting_down"
		httpStatus = fiber.StatusServiceUnavailable
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":          status,
		"providers":       s.svc.Health(),
		"devLoginEnabled": s.svc.DevLoginEnabled(),
	})
}
