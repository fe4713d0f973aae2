// Package user holds the identity records minted from provider logins
// and an in-memory store over them.
//
// The store is the only shared mutable state of the relay: a
// mutex-guarded map keyed by generated id with last-writer-wins update
// semantics. Lookups by (provider, providerUserId) and by email are
// linear scans, acceptable while the store is memory-resident and small;
// replace with an indexed store before scaling up.
package user

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is a concurrency-safe in-memory user store.
type Store struct {
	mu   sync.RWMutex
	byID map[string]User
	now  func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byID: make(map[string]User),
		now:  time.Now,
	}
}

// Save persists the user. A user without an id gets a generated one and
// its CreatedAt stamped; UpdatedAt is refreshed on every save. The stored
// and returned values are copies.
func (s *Store) Save(u User) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(u)
}

// save requires s.mu to be held.
func (s *Store) save(u User) User {
	if u.ID == "" {
		u.ID = uuid.NewString()
		u.CreatedAt = s.now()
	}

	u.UpdatedAt = s.now()
	s.byID[u.ID] = u.clone()

	return u.clone()
}

// Upsert atomically finds the user for (provider, providerUserID) or
// starts a fresh record with those fields, applies mutate, and saves.
// Running under one lock keeps concurrent callbacks for the same identity
// from allocating duplicate ids.
func (s *Store) Upsert(provider, providerUserID string, mutate func(*User)) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findByProviderLocked(provider, providerUserID)
	if !ok {
		u = User{Provider: provider, ProviderUserID: providerUserID}
	}

	if mutate != nil {
		mutate(&u)
	}

	return s.save(u)
}

// FindByID returns the user with the given id.
func (s *Store) FindByID(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, false
	}

	return u.clone(), true
}

// FindByProviderAndProviderUserID returns the at most one user matching
// the pair.
func (s *Store) FindByProviderAndProviderUserID(provider, providerUserID string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.findByProviderLocked(provider, providerUserID)
	if !ok {
		return User{}, false
	}

	return u.clone(), true
}

func (s *Store) findByProviderLocked(provider, providerUserID string) (User, bool) {
	for _, u := range s.byID {
		if u.Provider == provider && u.ProviderUserID == providerUserID {
			return u, true
		}
	}

	return User{}, false
}

// FindByEmail returns the first user with the given email.
func (s *Store) FindByEmail(email string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.byID {
		if u.Email == email {
			return u.clone(), true
		}
	}

	return User{}, false
}

// All returns a snapshot of every stored user.
func (s *Store) All() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u.clone())
	}

	return out
}

// Count returns the number of stored users.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byID)
}
