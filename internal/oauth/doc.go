// Package oauth implements the provider side of the login relay: a
// per-provider strategy for the OAuth2 authorization-code grant and a
// registry resolving provider names to clients.
//
// StandardClient covers any provider with static authorize/token/userinfo
// endpoints (the google/github/microsoft family). The code exchange runs
// through golang.org/x/oauth2 with client credentials in the form body;
// userinfo is a Bearer-authenticated GET. Github-style providers that
// omit the email field get it backfilled from their dedicated emails
// endpoint.
//
// All network calls honor the request context and are bounded by a fixed
// client timeout.
package oauth
