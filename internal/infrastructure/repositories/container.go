package repositories

import (
	ghRepo "github.com/rios0rios0/gitmigrate/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/gitmigrate/internal/infrastructure/repositories/gitlab"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register source registry with all source platform factories
	return container.Provide(func() *SourceRegistry {
		reg := NewSourceRegistry()
		reg.Register("gitlab", glRepo.NewSourceRepository)
		reg.Register("github", ghRepo.NewSourceRepository)
		return reg
	})
}
