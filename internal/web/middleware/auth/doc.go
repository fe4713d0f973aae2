// Package auth provides bearer token middleware for the web application.
//
// The middleware checks the Authorization header on every request outside
// the public path prefixes and rejects the request with a 401 JSON body
// if the header is missing or the token does not validate. Validation
// failures never abort the request pipeline with a hard error, any broken
// or expired token simply counts as unauthenticated.
//
// Validated claims are stored in fiber.Locals so handlers behind the
// middleware can read them via ClaimsFromCtx without parsing the header
// a second time.
//
// Usage:
//
//	app.Use(auth.New(codec))
package auth
