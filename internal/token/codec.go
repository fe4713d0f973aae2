package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// MinSecretLen is the minimum length of the HMAC signing secret in bytes.
	MinSecretLen = 32

	// DefaultExpirationSeconds is the token lifetime used when the config
	// leaves ExpirationSeconds at zero.
	DefaultExpirationSeconds = 3600
)

// Config holds the signing configuration for a Codec. It is passed
// explicitly into New so tests can run multiple key configurations
// side by side.
type Config struct {
	// Secret is the symmetric HMAC-SHA256 signing key. Must be at least
	// MinSecretLen bytes. The same key is used for generation and
	// validation within one process lifetime.
	Secret string
	// Issuer is included as the "iss" claim when non-blank and is then
	// also required during validation.
	Issuer string
	// ExpirationSeconds is the token TTL. Zero selects the default.
	ExpirationSeconds int64
	// Now overrides the time source. Nil selects time.Now.
	Now func() time.Time
}

// Codec signs and validates compact JWTs carrying arbitrary claims.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// New creates a Codec from the given config.
func New(cfg Config) (*Codec, error) {
	if len(cfg.Secret) < MinSecretLen {
		return nil, ErrSecretTooShort
	}

	ttlSeconds := cfg.ExpirationSeconds
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultExpirationSeconds
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Codec{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    time.Duration(ttlSeconds) * time.Second,
		now:    now,
	}, nil
}

// Generate produces a compact HS256-signed token for the given subject.
// The supplied claims are merged into the payload; "sub", "iat" and "exp"
// are always set by the codec and win over supplied values. The issuer
// claim is included only when configured.
func (c *Codec) Generate(subject string, claims map[string]any) (string, error) {
	now := c.now()

	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}

	mc["sub"] = subject
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(c.ttl).Unix()

	if c.issuer != "" {
		mc["iss"] = c.issuer
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(c.secret)
}

// Validate parses and verifies a token, returning its full claim set.
// It returns ErrInvalidSignature when the MAC does not verify (or the
// token is malformed), ErrExpired when the expiry has passed, and
// ErrIssuerMismatch when an issuer is configured but the token carries a
// different or no issuer.
func (c *Codec) Validate(tokenString string) (Claims, error) {
	mc := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(tokenString, mc,
		func(_ *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case err != nil:
		return nil, ErrInvalidSignature
	}

	if c.issuer != "" {
		iss, issErr := mc.GetIssuer()
		if issErr != nil || iss != c.issuer {
			return nil, ErrIssuerMismatch
		}
	}

	return Claims(mc), nil
}

// TryValidate is Validate with failures converted into a false result
// instead of an error. The request-authentication middleware uses it so a
// malformed Authorization header never fails the whole request pipeline.
func (c *Codec) TryValidate(tokenString string) (Claims, bool) {
	claims, err := c.Validate(tokenString)
	if err != nil {
		return nil, false
	}

	return claims, true
}
