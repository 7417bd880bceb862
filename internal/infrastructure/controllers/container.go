package controllers

import (
	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewListController); err != nil {
		return err
	}
	if err := container.Provide(NewOwnersController); err != nil {
		return err
	}
	if err := container.Provide(NewRunController); err != nil {
		return err
	}
	if err := container.Provide(NewKeysController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	listController *ListController,
	ownersController *OwnersController,
	runController *RunController,
	keysController *KeysController,
) *[]entities.Controller {
	return &[]entities.Controller{
		listController,
		ownersController,
		runController,
		keysController,
	}
}
