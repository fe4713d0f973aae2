package user

import "time"

// RoleUser is the default role assigned at upsert time when a user has no
// roles yet.
const RoleUser = "USER"

// User is the identity record kept per external login. The pair
// (Provider, ProviderUserID) uniquely identifies at most one user.
type User struct {
	// ID is an opaque generated identifier, stable once assigned.
	ID string `json:"id"`
	// Provider is the OAuth provider tag (google|github|microsoft).
	Provider string `json:"provider"`
	// ProviderUserID is the provider's subject claim, unique per provider.
	ProviderUserID string `json:"providerUserId"`
	// Email, Name and AvatarURL come from the latest profile and are
	// overwritten on every login.
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	// Roles defaults to {RoleUser} at upsert time when empty and is never
	// cleared afterwards, so manual role elevation survives re-login.
	Roles []string `json:"roles"`
	// CreatedAt is set once, at first save.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is refreshed on every save.
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasRole reports whether the user carries the given role.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}

	return false
}

// clone returns a deep copy so store callers never share slice memory
// with the map.
func (u User) clone() User {
	out := u
	if u.Roles != nil {
		out.Roles = append([]string(nil), u.Roles...)
	}

	return out
}
