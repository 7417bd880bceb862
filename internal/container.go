package internal

import (
	"github.com/rios0rios0/gitmigrate/internal/infrastructure/controllers"
	"github.com/rios0rios0/gitmigrate/internal/infrastructure/repositories"
	"github.com/rios0rios0/gitmigrate/internal/infrastructure/ui"
	"go.uber.org/dig"
)

// RegisterProviders registers all internal providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register all layers (bottom-up: infrastructure repos -> UI -> controllers)
	if err := repositories.RegisterProviders(container); err != nil {
		return err
	}
	if err := ui.RegisterProviders(container); err != nil {
		return err
	}
	if err := controllers.RegisterProviders(container); err != nil {
		return err
	}

	// Register the main app internal
	if err := container.Provide(NewAppInternal); err != nil {
		return err
	}

	return nil
}
