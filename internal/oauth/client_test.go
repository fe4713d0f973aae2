package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func completeConfig() ProviderConfig {
	return ProviderConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthURI:      "https://provider.example/authorize",
		TokenURI:     "https://provider.example/token",
		UserInfoURI:  "https://provider.example/userinfo",
		Scopes:       "openid, email ,profile",
	}
}

func TestProviderConfigConfigured(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProviderConfig)
		want   bool
	}{
		{"complete", func(*ProviderConfig) {}, true},
		{"missing client id", func(c *ProviderConfig) { c.ClientID = "" }, false},
		{"blank client secret", func(c *ProviderConfig) { c.ClientSecret = "   " }, false},
		{"missing auth uri", func(c *ProviderConfig) { c.AuthURI = "" }, false},
		{"missing token uri", func(c *ProviderConfig) { c.TokenURI = "" }, false},
		{"missing userinfo uri", func(c *ProviderConfig) { c.UserInfoURI = "" }, false},
		{"email uri is optional", func(c *ProviderConfig) { c.EmailURI = "" }, true},
		{"scopes are optional", func(c *ProviderConfig) { c.Scopes = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := completeConfig()
			tt.mutate(&cfg)
			assert.Equal(t, tt.want, cfg.Configured())
		})
	}
}

func TestAuthorizationURL(t *testing.T) {
	client := NewStandardClient("google", completeConfig())

	raw, err := client.AuthorizationURL("xyz")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "provider.example", u.Host)
	assert.Equal(t, "/authorize", u.Path)

	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
	assert.Equal(t, "xyz", q.Get("state"))

	// redirect_uri is the orchestrator's job, never the client's
	assert.False(t, q.Has("redirect_uri"))
}

func TestAuthorizationURLKeepsExistingQuery(t *testing.T) {
	cfg := completeConfig()
	cfg.AuthURI = "https://provider.example/authorize?audience=api"

	raw, err := NewStandardClient("custom", cfg).AuthorizationURL("s")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "api", u.Query().Get("audience"))
	assert.Equal(t, "s", u.Query().Get("state"))
}

func TestExchangeCode(t *testing.T) {
	var form url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at-123",
			"token_type":   "bearer",
		})
	}))
	defer srv.Close()

	cfg := completeConfig()
	cfg.TokenURI = srv.URL

	tok, err := NewStandardClient("github", cfg).
		ExchangeCode(context.Background(), "the-code", "https://relay.example/auth/callback/github")
	require.NoError(t, err)

	assert.Equal(t, "at-123", tok.AccessToken)
	assert.Equal(t, "authorization_code", form.Get("grant_type"))
	assert.Equal(t, "the-code", form.Get("code"))
	assert.Equal(t, "https://relay.example/auth/callback/github", form.Get("redirect_uri"))
	assert.Equal(t, "client-id", form.Get("client_id"))
	assert.Equal(t, "client-secret", form.Get("client_secret"))
}

func TestExchangeCodeNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"bad_verification_code"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	cfg := completeConfig()
	cfg.TokenURI = srv.URL

	_, err := NewStandardClient("github", cfg).
		ExchangeCode(context.Background(), "bad", "https://relay.example/cb")
	assert.ErrorIs(t, err, ErrTokenExchangeFailed)
}

func TestExchangeCodeUnreachable(t *testing.T) {
	cfg := completeConfig()
	cfg.TokenURI = "http://127.0.0.1:1/token"

	_, err := NewStandardClient("google", cfg).
		ExchangeCode(context.Background(), "code", "https://relay.example/cb")
	assert.ErrorIs(t, err, ErrTokenExchangeFailed)
}

func TestFetchUserInfoMissingAccessToken(t *testing.T) {
	client := NewStandardClient("google", completeConfig())

	_, err := client.FetchUserInfo(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingAccessToken)

	_, err = client.FetchUserInfo(context.Background(), &oauth2.Token{})
	assert.ErrorIs(t, err, ErrMissingAccessToken)
}

func TestFetchUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sub":     "sub-1",
			"email":   "user@example.com",
			"name":    "User One",
			"picture": "https://cdn.example/u1.png",
		})
	}))
	defer srv.Close()

	cfg := completeConfig()
	cfg.UserInfoURI = srv.URL

	profile, err := NewStandardClient("google", cfg).
		FetchUserInfo(context.Background(), &oauth2.Token{AccessToken: "at-123"})
	require.NoError(t, err)

	assert.Equal(t, "sub-1", profile["sub"])
	assert.Equal(t, "user@example.com", profile["email"])
}

func TestFetchUserInfoNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg := completeConfig()
	cfg.UserInfoURI = srv.URL

	_, err := NewStandardClient("google", cfg).
		FetchUserInfo(context.Background(), &oauth2.Token{AccessToken: "expired"})
	assert.ErrorIs(t, err, ErrUserInfoFailed)
}

func TestFetchUserInfoGithubEmailBackfill(t *testing.T) {
	tests := []struct {
		name      string
		profile   map[string]any
		emails    []map[string]any
		wantEmail any
	}{
		{
			name:    "primary email preferred",
			profile: map[string]any{"id": float64(42), "login": "octocat"},
			emails: []map[string]any{
				{"email": "a@x.com", "primary": false},
				{"email": "b@x.com", "primary": true},
			},
			wantEmail: "b@x.com",
		},
		{
			name:    "first email when none primary",
			profile: map[string]any{"id": float64(42)},
			emails: []map[string]any{
				{"email": "a@x.com", "primary": false},
				{"email": "b@x.com", "primary": false},
			},
			wantEmail: "a@x.com",
		},
		{
			name:    "null email triggers backfill",
			profile: map[string]any{"id": float64(42), "email": nil},
			emails: []map[string]any{
				{"email": "c@x.com", "primary": true},
			},
			wantEmail: "c@x.com",
		},
		{
			name:      "present email untouched",
			profile:   map[string]any{"id": float64(42), "email": "set@x.com"},
			emails:    nil,
			wantEmail: "set@x.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var emailCalls int

			mux := http.NewServeMux()
			mux.HandleFunc("/user", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(tt.profile)
			})
			mux.HandleFunc("/user/emails", func(w http.ResponseWriter, _ *http.Request) {
				emailCalls++
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(tt.emails)
			})

			srv := httptest.NewServer(mux)
			defer srv.Close()

			cfg := completeConfig()
			cfg.UserInfoURI = srv.URL + "/user"
			cfg.EmailURI = srv.URL + "/user/emails"

			profile, err := NewStandardClient("github", cfg).
				FetchUserInfo(context.Background(), &oauth2.Token{AccessToken: "at"})
			require.NoError(t, err)

			assert.Equal(t, tt.wantEmail, profile["email"])

			if _, present := tt.profile["email"]; present && tt.profile["email"] != nil {
				assert.Zero(t, emailCalls, "emails endpoint must not be hit when email is present")
			}
		})
	}
}

func TestFetchUserInfoEmailBackfillFailureIsNotFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": float64(7)})
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := completeConfig()
	cfg.UserInfoURI = srv.URL + "/user"
	cfg.EmailURI = srv.URL + "/user/emails"

	profile, err := NewStandardClient("github", cfg).
		FetchUserInfo(context.Background(), &oauth2.Token{AccessToken: "at"})
	require.NoError(t, err)

	_, hasEmail := profile["email"]
	assert.False(t, hasEmail)
}

func TestScopeList(t *testing.T) {
	tests := []struct {
		scopes string
		want   []string
	}{
		{"openid,email,profile", []string{"openid", "email", "profile"}},
		{" read:user , user:email ", []string{"read:user", "user:email"}},
		{"", []string{}},
		{",,", []string{}},
	}

	for _, tt := range tests {
		cfg := ProviderConfig{Scopes: tt.scopes}
		assert.Equal(t, tt.want, cfg.ScopeList())
	}
}
