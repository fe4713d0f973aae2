package token

import "time"

// Claims is the decoded key-value payload of a validated token.
type Claims map[string]any

// Subject returns the "sub" claim or an empty string.
func (c Claims) Subject() string {
	return c.stringClaim("sub")
}

// Issuer returns the "iss" claim or an empty string.
func (c Claims) Issuer() string {
	return c.stringClaim("iss")
}

// ExpiresAt returns the "exp" claim as a time. The zero time is returned
// when the claim is absent or not numeric.
func (c Claims) ExpiresAt() time.Time {
	return c.timeClaim("exp")
}

// IssuedAt returns the "iat" claim as a time. The zero time is returned
// when the claim is absent or not numeric.
func (c Claims) IssuedAt() time.Time {
	return c.timeClaim("iat")
}

// Roles returns the "roles" claim as a string slice. Non-string entries
// are skipped.
func (c Claims) Roles() []string {
	raw, ok := c["roles"].([]any)
	if !ok {
		return nil
	}

	roles := make([]string, 0, len(raw))

	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}

	return roles
}

func (c Claims) stringClaim(name string) string {
	s, _ := c[name].(string)
	return s
}

func (c Claims) timeClaim(name string) time.Time {
	switch v := c[name].(type) {
	case float64:
		return time.Unix(int64(v), 0)
	case int64:
		return time.Unix(v, 0)
	default:
		return time.Time{}
	}
}
