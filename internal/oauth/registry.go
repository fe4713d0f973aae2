package oauth

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// knownProviders is the fixed set of provider names the relay builds
// clients for. Config entries under other names are ignored.
var knownProviders = []string{"google", "github", "microsoft"}

// Registry resolves a provider name to its Client. It is built once from
// static configuration; no dynamic registration exists.
type Registry struct {
	clients map[string]Client
}

// NewRegistry builds one StandardClient per recognized provider name
// present in the config map. Presence, not completeness, decides
// registration: an incomplete entry is registered and surfaces later via
// Configured.
func NewRegistry(providers map[string]ProviderConfig) *Registry {
	clients := make(map[string]Client, len(knownProviders))

	for _, name := range knownProviders {
		cfg, ok := providers[name]
		if !ok {
			continue
		}

		clients[name] = NewStandardClient(name, cfg)

		log.Info().
			Str("provider", name).
			Bool("configured", cfg.Configured()).
			Msg("oauth provider registered")
	}

	return &Registry{clients: clients}
}

// Get returns the client for the given provider name or
// ErrUnknownProvider when none was registered.
func (r *Registry) Get(name string) (Client, error) {
	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}

	return client, nil
}

// All returns the registered clients keyed by provider name.
func (r *Registry) All() map[string]Client {
	out := make(map[string]Client, len(r.clients))
	for name, client := range r.clients {
		out[name] = client
	}

	return out
}
