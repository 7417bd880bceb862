package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
	"github.com/rios0rios0/gitmigrate/internal/infrastructure/repositories/gitea"
)

// OwnersController handles the "owners" subcommand: print the candidate
// destination namespaces.
type OwnersController struct{}

// NewOwnersController creates a new OwnersController.
func NewOwnersController() *OwnersController {
	return &OwnersController{}
}

// GetBind returns the Cobra command metadata for the owners controller.
func (it *OwnersController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "owners",
		Short: "List candidate destination owners",
		Long: `Print the authenticated destination identity and the organizations
it belongs to. The logins are the values accepted by the --owner flag
of "run" and "keys"; the identity itself is the default.`,
	}
}

// Execute prints the owner candidates, identity first.
func (it *OwnersController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	destination := gitea.NewDestinationRepository(settings.Destination.URL, settings.Destination.Token)
	owners, listErr := destination.ListOwners(ctx)
	if listErr != nil {
		logger.Errorf("failed to list owners: %v", listErr)
		return
	}

	for index, owner := range owners {
		marker := ""
		if index == 0 {
			marker = "  (you)"
		}
		fmt.Printf("%-30s %s%s\n", owner.Login, owner.Name, marker)
	}
}
