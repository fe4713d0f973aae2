// Package token implements the JWT issue/verify core of the login relay.
//
// A Codec signs compact HS256 tokens carrying a subject, issued-at and
// expiry plus arbitrary extra claims, and validates them with expiry and
// issuer checks. The signing key is plain configuration handed to New,
// never process-wide state, so tests can run several key setups at once.
//
// Validate reports failures through the sentinel errors of this package;
// TryValidate collapses every failure into a boolean for callers such as
// request middleware that must not hard-fail on a bad header.
package token
