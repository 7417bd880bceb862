package ui

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/gitmigrate/internal/domain/repositories"
)

// RegisterProviders registers all UI providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewProgressLogger); err != nil {
		return err
	}

	// Bind the interface to the implementation
	return container.Provide(func(impl *ProgressLogger) domainRepos.ProgressReporter {
		return impl
	})
}
