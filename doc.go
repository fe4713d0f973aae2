// Package main provides the entry point for the authrelay service.
// It runs a Fiber web server that relays OAuth2 logins: users are
// redirected to a configured identity provider, the authorization code
// is exchanged server side, the returned profile is normalized into an
// in-memory user record and a signed JWT is handed back for subsequent
// API calls.
package main
