package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/authrelay/authrelay/internal/auth"
	"github.com/authrelay/authrelay/internal/config"
	"github.com/authrelay/authrelay/internal/web/handler"
)

const (
	// Path is the base path of the login routes.
	Path = handler.AuthBasePath + "/login"

	// CallbackPath is the base path for provider callbacks.
	CallbackPath = handler.AuthBasePath + "/callback"

	// defaultState is used when the caller supplies no anti-CSRF state.
	defaultState = "state"
)

// Service is the login handler service.
type Service struct {
	cfg *config.Config
	svc *auth.Service
}

// Handler is the login handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the login handler.
// The dev route is registered before the provider route so fiber does not
// treat "dev" as a provider name.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *auth.Service) error {
	if app == nil || cfg == nil || svc == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.cfg = cfg
	s.svc = svc

	app.Post(Path+"/dev", s.DevLogin)
	app.Post(Path+"/:provider", s.Login)
	app.Get(CallbackPath+"/:provider", s.Callback)

	return nil
}

// Login builds the provider authorization URL for the browser to follow.
// No network call to the provider happens here.
func (s *Service) Login(c *fiber.Ctx) error {
	var (
		provider = c.Params("provider")
		state    = c.Query("state", defaultState)
	)

	redirectURL, err := s.svc.BuildLoginRedirect(provider, state)
	if err != nil {
		return writeAuthError(c, provider, err)
	}

	return c.JSON(fiber.Map{"redirectUrl": redirectURL})
}

// Callback finishes the login: exchanges the authorization code, fetches
// the profile, upserts the user and returns the signed session token.
func (s *Service) Callback(c *fiber.Ctx) error {
	provider := c.Params("provider")

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "missing_code",
			"message": "query parameter code is required",
		})
	}

	result, err := s.svc.HandleCallback(c.UserContext(), provider, code)
	if err != nil {
		return writeAuthError(c, provider, err)
	}

	return c.JSON(result)
}

// DevLogin issues a token for a plain email without any provider round
// trip. Only available when enabled in the config.
func (s *Service) DevLogin(c *fiber.Ctx) error {
	body := struct {
		Email string `json:"email"`
	}{}

	// an empty or broken body falls through to the email check
	if err := c.BodyParser(&body); err != nil {
		log.Debug().Err(err).Msg("dev login body not parseable")
	}

	result, err := s.svc.DevLogin(body.Email)
	if err != nil {
		return writeAuthError(c, "dev", err)
	}

	return c.JSON(result)
}
