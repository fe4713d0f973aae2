package oauth

import (
	"context"
	"strings"

	"golang.org/x/oauth2"
)

// Profile is the flat key-value user profile returned by a provider's
// userinfo endpoint.
type Profile map[string]any

// ProviderConfig holds the static per-provider settings. The struct is
// immutable after config load.
type ProviderConfig struct {
	// ClientID is the OAuth2 client identifier issued by the provider.
	ClientID string
	// ClientSecret is the OAuth2 client secret issued by the provider.
	ClientSecret string
	// AuthURI is the provider's authorization endpoint.
	AuthURI string `validate:"omitempty,url"`
	// TokenURI is the provider's token endpoint.
	TokenURI string `validate:"omitempty,url"`
	// UserInfoURI is the provider's userinfo endpoint.
	UserInfoURI string `validate:"omitempty,url"`
	// EmailURI is an optional dedicated emails endpoint for providers
	// that omit the email field from the userinfo response (github).
	EmailURI string `validate:"omitempty,url"`
	// Scopes is a comma-separated scope list.
	Scopes string
}

// Configured reports whether the provider has everything it needs for a
// full authorization-code flow: client id, client secret, authorization,
// token and userinfo endpoints.
func (p ProviderConfig) Configured() bool {
	return strings.TrimSpace(p.ClientID) != "" &&
		strings.TrimSpace(p.ClientSecret) != "" &&
		strings.TrimSpace(p.AuthURI) != "" &&
		strings.TrimSpace(p.TokenURI) != "" &&
		strings.TrimSpace(p.UserInfoURI) != ""
}

// ScopeList splits the comma-separated scope config into trimmed scopes.
func (p ProviderConfig) ScopeList() []string {
	parts := strings.Split(p.Scopes, ",")
	scopes := make([]string, 0, len(parts))

	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			scopes = append(scopes, s)
		}
	}

	return scopes
}

// Client is the per-provider strategy for the OAuth2 authorization-code
// grant. One instance exists per configured provider; the registry owns
// them. Implementations return provider facts only and never touch the
// user store or mint tokens.
type Client interface {
	// Name returns the provider identifier (e.g. "google", "github").
	Name() string

	// AuthorizationURL builds the provider's authorize endpoint URL with
	// client_id, response_type=code, scope and the caller's opaque state.
	// The redirect_uri is deliberately absent: the callback URL depends on
	// runtime request context, so the orchestrator appends it afterward.
	AuthorizationURL(state string) (string, error)

	// ExchangeCode exchanges the authorization code for tokens via a
	// form-encoded POST to the token endpoint.
	ExchangeCode(ctx context.Context, code, redirectURI string) (*oauth2.Token, error)

	// FetchUserInfo performs an authenticated GET against the userinfo
	// endpoint and returns the JSON body as a flat profile.
	FetchUserInfo(ctx context.Context, tok *oauth2.Token) (Profile, error)

	// Configured reports whether login attempts may proceed. It is a pure
	// predicate and must not perform network calls.
	Configured() bool
}
