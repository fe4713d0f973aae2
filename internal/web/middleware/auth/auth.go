package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/authrelay/authrelay/internal/token"
)

// claimsLocalsKey is the fiber.Locals key holding the validated token claims.
const claimsLocalsKey = "tokenClaims"

// bearerPrefix of the Authorization header value.
const bearerPrefix = "Bearer "

// PublicPrefixes lists the path prefixes reachable without a token.
// Login and callback have to be open so a user can obtain a token in
// the first place.
var PublicPrefixes = []string{ //nolint:gochecknoglobals
	"/auth/login",
	"/auth/callback",
	"/auth/health",
	"/metrics",
}

// New creates a fiber middleware that requires a valid bearer token on
// every path outside PublicPrefixes. Validated claims are stored in
// fiber.Locals for handlers, see ClaimsFromCtx.
func New(codec *token.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isPublic(c.Path()) {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return unauthorized(c, "missing_authorization")
		}

		claims, ok := codec.TryValidate(strings.TrimPrefix(header, bearerPrefix))
		if !ok {
			return unauthorized(c, "invalid_token")
		}

		c.Locals(claimsLocalsKey, claims)

		return c.Next()
	}
}

// ClaimsFromCtx returns the claims stored by the middleware.
func ClaimsFromCtx(c *fiber.Ctx) (token.Claims, bool) {
	claims, ok := c.Locals(claimsLocalsKey).(token.Claims)
	return claims, ok
}

// isPublic matches a prefix exactly or as a full path segment, so
// /auth/login and /auth/login/google are public but /auth/loginfoo is not.
func isPublic(path string) bool {
	for _, prefix := range PublicPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}

	return false
}

func unauthorized(c *fiber.Ctx, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": code})
}
