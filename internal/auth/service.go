package auth

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/authrelay/authrelay/internal/oauth"
	"github.com/authrelay/authrelay/internal/token"
	"github.com/authrelay/authrelay/internal/user"
)

// Service orchestrates the full login flow: build redirect URL, receive
// the callback, exchange the code, fetch and normalize the profile,
// upsert the user and mint a session token. It references the registry,
// store and codec by value semantics only; all flow state is
// request-scoped.
type Service struct {
	registry        *oauth.Registry
	users           *user.Store
	codec           *token.Codec
	redirectBaseURL string
	devLoginEnabled bool
}

// Result is the response of a completed login: a signed session token
// plus a public-safe view of the user.
type Result struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// PublicUser is the externally visible user view. No provider secrets, no
// internal-only fields.
type PublicUser struct {
	ID        string   `json:"id,omitempty"`
	Email     string   `json:"email,omitempty"`
	Name      string   `json:"name,omitempty"`
	AvatarURL string   `json:"avatarUrl,omitempty"`
	Provider  string   `json:"provider,omitempty"`
	Roles     []string `json:"roles"`
}

// ProviderHealth reports per-provider readiness.
type ProviderHealth struct {
	Configured bool `json:"configured"`
}

// NewService creates the login orchestrator.
func NewService(registry *oauth.Registry, users *user.Store, codec *token.Codec, redirectBaseURL string, devLoginEnabled bool) *Service {
	return &Service{
		registry:        registry,
		users:           users,
		codec:           codec,
		redirectBaseURL: strings.TrimRight(redirectBaseURL, "/"),
		devLoginEnabled: devLoginEnabled,
	}
}

// BuildLoginRedirect resolves the provider, verifies it is configured
// without making any network call, and returns the authorization URL with
// the callback URL appended as redirect_uri.
func (s *Service) BuildLoginRedirect(providerName, state string) (string, error) {
	client, err := s.registry.Get(providerName)
	if err != nil {
		return "", err
	}

	if !client.Configured() {
		return "", fmt.Errorf("%w: %s", ErrProviderNotConfigured, providerName)
	}

	authURL, err := client.AuthorizationURL(state)
	if err != nil {
		return "", err
	}

	return appendQuery(authURL, "redirect_uri", s.CallbackURL(providerName))
}

// HandleCallback drives the second half of the flow. The callback URL is
// recomputed here and must match the one used for the redirect, because
// the provider validates it during the code exchange.
func (s *Service) HandleCallback(ctx context.Context, providerName, code string) (*Result, error) {
	client, err := s.registry.Get(providerName)
	if err != nil {
		return nil, err
	}

	if !client.Configured() {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, providerName)
	}

	tok, err := client.ExchangeCode(ctx, code, s.CallbackURL(providerName))
	if err != nil {
		return nil, err
	}

	profile, err := client.FetchUserInfo(ctx, tok)
	if err != nil {
		return nil, err
	}

	subject := profileString(profile, "sub", "id")
	if subject == "" {
		return nil, fmt.Errorf("%w: provider %s", ErrMissingSubject, providerName)
	}

	email := profileString(profile, "email")
	name := profileString(profile, "name")
	avatar := profileString(profile, "picture", "avatar_url")

	// Profile data always wins over stale stored data; roles are only
	// ever defaulted, never stripped.
	u := s.users.Upsert(providerName, subject, func(u *user.User) {
		u.Email = email
		u.Name = name
		u.AvatarURL = avatar

		if len(u.Roles) == 0 {
			u.Roles = []string{user.RoleUser}
		}
	})

	signed, err := s.codec.Generate(u.ID, map[string]any{
		"uid":       u.ID,
		"email":     u.Email,
		"name":      u.Name,
		"avatarUrl": u.AvatarURL,
		"provider":  u.Provider,
		"roles":     u.Roles,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("provider", providerName).
		Str("user_id", u.ID).
		Msg("user logged in")

	return &Result{
		Token: signed,
		User: PublicUser{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			AvatarURL: u.AvatarURL,
			Provider:  u.Provider,
			Roles:     u.Roles,
		},
	}, nil
}

// DevLogin mints a token for the given email without any provider round
// trip. When a stored user carries the email, the token is issued for
// that user with its id and roles; otherwise a detached dev subject is
// used. Only available when enabled in config.
func (s *Service) DevLogin(email string) (*Result, error) {
	if !s.devLoginEnabled {
		return nil, ErrDevLoginDisabled
	}

	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}

	if u, ok := s.users.FindByEmail(email); ok {
		signed, err := s.codec.Generate(u.ID, map[string]any{
			"uid":       u.ID,
			"email":     u.Email,
			"name":      u.Name,
			"avatarUrl": u.AvatarURL,
			"provider":  u.Provider,
			"roles":     u.Roles,
		})
		if err != nil {
			return nil, err
		}

		log.Warn().Str("email", email).Str("user_id", u.ID).Msg("dev login token issued for stored user")

		return &Result{
			Token: signed,
			User: PublicUser{
				ID:        u.ID,
				Email:     u.Email,
				Name:      u.Name,
				AvatarURL: u.AvatarURL,
				Provider:  u.Provider,
				Roles:     u.Roles,
			},
		}, nil
	}

	roles := []string{user.RoleUser}

	signed, err := s.codec.Generate("dev:"+email, map[string]any{
		"email": email,
		"name":  email,
		"roles": roles,
	})
	if err != nil {
		return nil, err
	}

	log.Warn().Str("email", email).Msg("dev login token issued")

	return &Result{
		Token: signed,
		User:  PublicUser{Email: email, Name: email, Roles: roles},
	}, nil
}

// DevLoginEnabled reports the dev login toggle.
func (s *Service) DevLoginEnabled() bool {
	return s.devLoginEnabled
}

// Health returns the per-provider configured state for every registered
// provider.
func (s *Service) Health() map[string]ProviderHealth {
	out := map[string]ProviderHealth{}
	for name, client := range s.registry.All() {
		out[name] = ProviderHealth{Configured: client.Configured()}
	}

	return out
}

// CallbackURL computes {redirectBaseUrl}/auth/callback/{provider}.
func (s *Service) CallbackURL(providerName string) string {
	return s.redirectBaseURL + "/auth/callback/" + providerName
}

// appendQuery adds one query parameter to a raw URL.
func appendQuery(rawURL, key, value string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// profileString returns the first present, non-empty profile value among
// keys, rendered as a string. JSON numbers (github's numeric id) are
// formatted without an exponent.
func profileString(p oauth.Profile, keys ...string) string {
	for _, key := range keys {
		v, ok := p[key]
		if !ok || v == nil {
			continue
		}

		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		default:
			return fmt.Sprintf("%v", t)
		}
	}

	return ""
}
