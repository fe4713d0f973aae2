// Package auth coordinates the OAuth2 login flow of the relay.
//
// The flow is two logically independent requests correlated only by the
// opaque state value: first BuildLoginRedirect hands the browser to the
// provider, later HandleCallback exchanges the returned code, fetches and
// normalizes the profile, upserts the user record keyed by
// (provider, subject) and mints a signed session token.
//
// Profile normalization precedence: subject is "sub" falling back to
// "id" (providers with numeric ids), avatar is "picture" falling back to
// "avatar_url", email and name pass through as-is. Any step's failure is
// terminal for the attempt; callers restart from the login redirect.
//
// Package auth never talks to providers itself; it drives the clients
// from the oauth package and reaches the store and token codec through
// their constructors' values only.
package auth
