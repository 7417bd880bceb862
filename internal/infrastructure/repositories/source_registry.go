package repositories

import (
	"fmt"

	domainRepos "github.com/rios0rios0/gitmigrate/internal/domain/repositories"
)

// SourceFactory is a constructor function that creates a SourceRepository
// for an instance URL and auth token.
type SourceFactory func(baseURL, token string) domainRepos.SourceRepository

// SourceRegistry manages all registered source platform implementations.
type SourceRegistry struct {
	sources map[string]SourceFactory
}

// NewSourceRegistry creates an empty source registry.
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{
		sources: make(map[string]SourceFactory),
	}
}

// Register adds a source factory under the given name (e.g. "gitlab").
func (r *SourceRegistry) Register(name string, factory SourceFactory) {
	r.sources[name] = factory
}

// Get returns a configured source instance for the given name, URL and token.
func (r *SourceRegistry) Get(name, baseURL, token string) (domainRepos.SourceRepository, error) {
	factory, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %q", name)
	}
	return factory(baseURL, token), nil
}

// Names returns the list of registered source names.
func (r *SourceRegistry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	return names
}
