package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// requestTimeout bounds every provider call so a slow provider cannot
// exhaust the server's worker pool.
const requestTimeout = 10 * time.Second

// StandardClient implements Client for any provider speaking the plain
// OAuth2 authorization-code grant with static endpoint configuration.
type StandardClient struct {
	name string
	cfg  ProviderConfig
	hc   *http.Client
}

// NewStandardClient creates a client for the named provider.
func NewStandardClient(name string, cfg ProviderConfig) *StandardClient {
	return &StandardClient{
		name: name,
		cfg:  cfg,
		hc:   &http.Client{Timeout: requestTimeout},
	}
}

// Name returns the provider identifier.
func (c *StandardClient) Name() string {
	return c.name
}

// Configured reports whether the provider settings are complete.
func (c *StandardClient) Configured() bool {
	return c.cfg.Configured()
}

// AuthorizationURL builds the authorize endpoint URL. The caller appends
// redirect_uri; the provider echoes state back unmodified.
func (c *StandardClient) AuthorizationURL(state string) (string, error) {
	u, err := url.Parse(c.cfg.AuthURI)
	if err != nil {
		return "", fmt.Errorf("parse authorization uri for provider %s: %w", c.name, err)
	}

	q := u.Query()
	q.Set("client_id", c.cfg.ClientID)
	q.Set("response_type", "code")
	q.Set("scope", strings.Join(c.cfg.ScopeList(), " "))
	q.Set("state", state)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// ExchangeCode performs the form-encoded POST to the token endpoint with
// grant_type=authorization_code, code, redirect_uri and the client
// credentials in the request body.
func (c *StandardClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*oauth2.Token, error) {
	conf := &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.cfg.AuthURI,
			TokenURL:  c.cfg.TokenURI,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.hc)

	tok, err := conf.Exchange(ctx, code, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	if err != nil {
		log.Debug().Err(err).Str("provider", c.name).Msg("token exchange failed")
		return nil, fmt.Errorf("%w: provider %s: %v", ErrTokenExchangeFailed, c.name, err)
	}

	return tok, nil
}

// FetchUserInfo fetches the userinfo document with a Bearer header. For
// github-style providers a missing email is backfilled from the dedicated
// emails endpoint when one is configured.
func (c *StandardClient) FetchUserInfo(ctx context.Context, tok *oauth2.Token) (Profile, error) {
	if tok == nil || tok.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}

	profile := Profile{}
	if err := c.getJSON(ctx, c.cfg.UserInfoURI, tok.AccessToken, &profile); err != nil {
		return nil, err
	}

	if email, ok := profile["email"]; (!ok || email == nil) && c.cfg.EmailURI != "" {
		c.backfillEmail(ctx, tok.AccessToken, profile)
	}

	return profile, nil
}

// backfillEmail merges the primary address from the emails endpoint into
// the profile, falling back to the first entry if none is marked primary.
// Failures leave the profile without an email instead of failing the
// whole login.
func (c *StandardClient) backfillEmail(ctx context.Context, accessToken string, profile Profile) {
	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}

	if err := c.getJSON(ctx, c.cfg.EmailURI, accessToken, &emails); err != nil {
		log.Warn().Err(err).Str("provider", c.name).Msg("emails endpoint lookup failed")
		return
	}

	if len(emails) == 0 {
		return
	}

	chosen := emails[0].Email

	for _, e := range emails {
		if e.Primary {
			chosen = e.Email
			break
		}
	}

	if chosen != "" {
		profile["email"] = chosen
	}
}

func (c *StandardClient) getJSON(ctx context.Context, endpoint, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: provider %s: %v", ErrUserInfoFailed, c.name, err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: provider %s: %v", ErrUserInfoFailed, c.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: provider %s returned status %d", ErrUserInfoFailed, c.name, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: provider %s: %v", ErrUserInfoFailed, c.name, err)
	}

	return nil
}
