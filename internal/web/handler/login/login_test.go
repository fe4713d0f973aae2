package login_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authrelay/authrelay/internal/auth"
	"github.com/authrelay/authrelay/internal/config"
	"github.com/authrelay/authrelay/internal/oauth"
	"github.com/authrelay/authrelay/internal/token"
	"github.com/authrelay/authrelay/internal/user"
	"github.com/authrelay/authrelay/internal/web/handler/login"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fakeProvider serves the token and userinfo endpoints of a provider.
func fakeProvider(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-123","token_type":"bearer"}`))
	})

	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sub":"prov-1","email":"a@example.com","name":"Alice","picture":"https://img.example/a.png"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func newTestApp(t *testing.T, providers map[string]oauth.ProviderConfig, devLogin bool) *fiber.App {
	t.Helper()

	codec, err := token.New(token.Config{Secret: testSecret, Issuer: "authrelay-test"})
	require.NoError(t, err)

	svc := auth.NewService(
		oauth.NewRegistry(providers),
		user.NewStore(),
		codec,
		"http://relay.example",
		devLogin,
	)

	app := fiber.New()
	require.NoError(t, login.Handler.Init(app, &config.Config{}, svc))

	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body
}

func TestLoginUnknownProvider(t *testing.T) {
	app := newTestApp(t, nil, false)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/auth/login/gitlab", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "unknown_provider", body["error"])
}

func TestLoginProviderNotConfigured(t *testing.T) {
	app := newTestApp(t, map[string]oauth.ProviderConfig{
		"google": {ClientID: "id-only"},
	}, false)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/auth/login/google", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "provider_not_configured", body["error"])
	assert.Contains(t, body["instructions"], config.EnvConfigJSON)
}

func TestLoginBuildsRedirectURL(t *testing.T) {
	app := newTestApp(t, map[string]oauth.ProviderConfig{
		"google": {
			ClientID:     "cid",
			ClientSecret: "sec",
			AuthURI:      "https://provider.example/authorize",
			TokenURI:     "https://provider.example/token",
			UserInfoURI:  "https://provider.example/userinfo",
			Scopes:       "openid,email",
		},
	}, false)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/auth/login/google?state=xyz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)

	redirectURL, ok := body["redirectUrl"].(string)
	require.True(t, ok, "redirectUrl missing: %v", body)

	parsed, err := url.Parse(redirectURL)
	require.NoError(t, err)

	q := parsed.Query()
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "xyz", q.Get("state"))
	assert.Equal(t, "http://relay.example/auth/callback/google", q.Get("redirect_uri"))
}

func TestLoginDefaultState(t *testing.T) {
	app := newTestApp(t, map[string]oauth.ProviderConfig{
		"google": {
			ClientID:     "cid",
			ClientSecret: "sec",
			AuthURI:      "https://provider.example/authorize",
			TokenURI:     "https://provider.example/token",
			UserInfoURI:  "https://provider.example/userinfo",
		},
	}, false)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/auth/login/google", nil))
	require.NoError(t, err)

	body := decodeBody(t, resp)

	parsed, err := url.Parse(body["redirectUrl"].(string))
	require.NoError(t, err)
	assert.Equal(t, "state", parsed.Query().Get("state"))
}

func TestCallbackMissingCode(t *testing.T) {
	app := newTestApp(t, nil, false)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/auth/callback/google", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "missing_code", body["error"])
}

func TestCallbackIssuesToken(t *testing.T) {
	srv := fakeProvider(t)

	app := newTestApp(t, map[string]oauth.ProviderConfig{
		"google": {
			ClientID:     "cid",
			ClientSecret: "sec",
			AuthURI:      srv.URL + "/authorize",
			TokenURI:     srv.URL + "/token",
			UserInfoURI:  srv.URL + "/userinfo",
		},
	}, false)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/auth/callback/google?code=abc&state=xyz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)

	signed, ok := body["token"].(string)
	require.True(t, ok, "token missing: %v", body)
	assert.True(t, strings.Count(signed, ".") == 2, "token is not a compact jwt")

	userBody, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@example.com", userBody["email"])
	assert.Equal(t, "google", userBody["provider"])
	assert.Equal(t, []any{"USER"}, userBody["roles"])
}

func TestCallbackExchangeFailure(t *testing.T) {
	app := newTestApp(t, map[string]oauth.ProviderConfig{
		"google": {
			ClientID:     "cid",
			ClientSecret: "sec",
			AuthURI:      "http://127.0.0.1:1/authorize",
			TokenURI:     "http://127.0.0.1:1/token",
			UserInfoURI:  "http://127.0.0.1:1/userinfo",
		},
	}, false)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/auth/callback/google?code=abc", nil), 30000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "token_exchange_failed", body["error"])
}

func TestDevLoginDisabled(t *testing.T) {
	app := newTestApp(t, nil, false)

	req := httptest.NewRequest(fiber.MethodPost, "/auth/login/dev", strings.NewReader(`{"email":"dev@example.com"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "dev_login_disabled", body["error"])
}

func TestDevLoginMissingEmail(t *testing.T) {
	app := newTestApp(t, nil, true)

	req := httptest.NewRequest(fiber.MethodPost, "/auth/login/dev", strings.NewReader(`{}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "email_required", body["error"])
}

func TestDevLoginIssuesToken(t *testing.T) {
	app := newTestApp(t, nil, true)

	req := httptest.NewRequest(fiber.MethodPost, "/auth/login/dev", strings.NewReader(`{"email":"dev@example.com"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.NotEmpty(t, body["token"])

	userBody, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "dev@example.com", userBody["email"])
}
