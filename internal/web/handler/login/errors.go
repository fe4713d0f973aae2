// Package login provides the HTTP surface of the provider login flow:
// building the authorization redirect, finishing the provider callback
// and the development-only email login.
package login

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/authrelay/authrelay/internal/auth"
	"github.com/authrelay/authrelay/internal/config"
	"github.com/authrelay/authrelay/internal/oauth"
)

// notConfiguredInstructions tells an operator how to finish the provider
// setup without leaking which secret value is missing.
const notConfiguredInstructions = "set clientId and clientSecret for this provider in etc/main.toml " +
	"or inject them via the " + config.EnvConfigJSON + " environment variable"

// writeAuthError maps a login flow error to its HTTP response.
// Every branch responds with a JSON body carrying an error code and a
// human readable message.
func writeAuthError(c *fiber.Ctx, provider string, err error) error {
	switch {
	case errors.Is(err, oauth.ErrUnknownProvider):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "unknown_provider",
			"message": fmt.Sprintf("provider %s is not supported", provider),
		})

	case errors.Is(err, auth.ErrProviderNotConfigured):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":        "provider_not_configured",
			"message":      fmt.Sprintf("provider %s has no client credentials", provider),
			"instructions": notConfiguredInstructions,
		})

	case errors.Is(err, oauth.ErrTokenExchangeFailed):
		log.Warn().Err(err).Str("provider", provider).Msg("token exchange failed")

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "token_exchange_failed",
			"message": "the provider rejected the authorization code",
		})

	case errors.Is(err, oauth.ErrMissingAccessToken),
		errors.Is(err, oauth.ErrUserInfoFailed),
		errors.Is(err, auth.ErrMissingSubject):
		log.Warn().Err(err).Str("provider", provider).Msg("userinfo fetch failed")

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "userinfo_failed",
			"message": "the provider did not return a usable profile",
		})

	case errors.Is(err, auth.ErrDevLoginDisabled):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "dev_login_disabled",
			"message": "dev login is disabled",
		})

	case errors.Is(err, auth.ErrEmailRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "email_required",
			"message": "field email is required",
		})

	default:
		log.Error().Err(err).Str("provider", provider).Msg("login flow failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_error",
			"message": "unexpected error during login",
		})
	}
}
