package internal

import (
	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
)

// AppInternal aggregates every wired controller for the CLI layer.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the application context from the controller slice.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns all registered controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
