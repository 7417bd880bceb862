package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitmigrate/internal/domain/commands"
	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitmigrate/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/gitmigrate/internal/infrastructure/repositories"
	"github.com/rios0rios0/gitmigrate/internal/infrastructure/repositories/gitea"
)

// KeysController handles the "keys" subcommand: the deploy-key migration
// pass for already-migrated repositories.
type KeysController struct {
	registry *infraRepos.SourceRegistry
	progress domainRepos.ProgressReporter
}

// NewKeysController creates a new KeysController.
func NewKeysController(
	registry *infraRepos.SourceRegistry,
	progress domainRepos.ProgressReporter,
) *KeysController {
	return &KeysController{registry: registry, progress: progress}
}

// GetBind returns the Cobra command metadata for the keys controller.
func (it *KeysController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "keys",
		Short: "Copy per-project deploy keys to the destination",
		Long: `For each selected project, fetch its deploy keys from the source and
attach them to the migrated repository on the destination.

Projects are processed one at a time because the attachments depend on
the key fetch, but the attachments themselves run concurrently. A key
whose material is already attached counts as skipped, not failed. Note
that a project with several keys can show up in more than one result
bucket; the report counts key-level outcomes.`,
	}
}

// Execute runs the deploy-key migration pass.
func (it *KeysController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	selectedPaths, _ := cmd.Flags().GetStringSlice("project")
	ownerLogin, _ := cmd.Flags().GetString("owner")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

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
	destination := gitea.NewDestinationRepository(settings.Destination.URL, settings.Destination.Token)

	projects, listErr := source.ListProjects(ctx)
	if listErr != nil {
		logger.Errorf("failed to list projects: %v", listErr)
		return
	}
	projects = filterProjects(projects, selectedPaths)
	if len(projects) == 0 {
		logger.Warn("No projects selected, no keys to migrate")
		return
	}

	owners, ownersErr := destination.ListOwners(ctx)
	if ownersErr != nil {
		logger.Errorf("failed to list owners: %v", ownersErr)
		return
	}
	owner, found := selectOwner(owners, ownerLogin)
	if !found {
		logger.Errorf("no destination owner matches %q", ownerLogin)
		return
	}

	if dryRun {
		for _, project := range projects {
			logger.Infof(
				"Would copy deploy keys of %s to %s/%s",
				project.PathWithNamespace, owner.Login,
				commands.DestinationRepoName(project.PathWithNamespace),
			)
		}
		return
	}

	logger.Infof("Copying deploy keys of %d projects to %s...", len(projects), owner.Login)
	command := commands.NewMigrateCommand(source, destination, it.progress, settings.Source.Username)
	result := command.MigrateDeployKeys(ctx, projects, owner)
	printReport(result)
}

// AddFlags adds the keys-specific flags to the given Cobra command.
func (it *KeysController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("project", nil,
		"Source path of a project to process (repeatable; default: all)")
	cmd.Flags().String("owner", "",
		"Destination owner login (default: the authenticated user)")
}
