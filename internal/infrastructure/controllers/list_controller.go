package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
	infraRepos "github.com/rios0rios0/gitmigrate/internal/infrastructure/repositories"
)

// ListController handles the "list" subcommand: enumerate and print the
// sorted source project collection.
type ListController struct {
	registry *infraRepos.SourceRegistry
}

// NewListController creates a new ListController.
func NewListController(registry *infraRepos.SourceRegistry) *ListController {
	return &ListController{registry: registry}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list",
		Short: "List the projects available on the source platform",
		Long: `Enumerate every project the configured source token can access,
following pagination to the end, and print them sorted by their
namespaced name. The printed paths are the values accepted by the
--project flag of "run" and "keys".`,
	}
}

// Execute lists the source projects. A listing failure is logged, not
// fatal to the process: there is simply nothing to print.
func (it *ListController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	source, err := it.registry.Get(settings.Source.Type, settings.Source.URL, settings.Source.Token)
	if err != nil {
		logger.Errorf("failed to initialize source %q: %v", settings.Source.Type, err)
		return
	}

	projects, listErr := source.ListProjects(ctx)
	if listErr != nil {
		logger.Errorf("failed to list projects: %v", listErr)
		return
	}

	logger.Infof("Found %d projects on %s", len(projects), settings.Source.URL)
	for _, project := range projects {
		fmt.Printf("%-60s %s  (%s)\n", project.NameWithNamespace, project.PathWithNamespace, project.Visibility)
	}
}
