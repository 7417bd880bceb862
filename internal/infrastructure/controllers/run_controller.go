package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitmigrate/internal/domain/commands"
	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitmigrate/internal/domain/repositories"
	"github.com/rios0rios0/gitmigrate/internal/infrastructure/gitcheck"
	infraRepos "github.com/rios0rios0/gitmigrate/internal/infrastructure/repositories"
	"github.com/rios0rios0/gitmigrate/internal/infrastructure/repositories/gitea"
)

// RunController handles the "run" subcommand: the repository migration
// pass.
type RunController struct {
	registry *infraRepos.SourceRegistry
	progress domainRepos.ProgressReporter
}

// NewRunController creates a new RunController.
func NewRunController(
	registry *infraRepos.SourceRegistry,
	progress domainRepos.ProgressReporter,
) *RunController {
	return &RunController{registry: registry, progress: progress}
}

// GetBind returns the Cobra command metadata for the run controller.
func (it *RunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "run",
		Short: "Migrate the selected projects to the destination",
		Long: `Enumerate the source projects, then drive the destination's
mirror-import endpoint for each selected one concurrently.

Repositories that already exist on the destination are skipped, not
treated as errors. Every failure is isolated to its own repository and
reported once at the end; the batch is never aborted mid-flight.`,
	}
}

// Execute runs the repository migration pass.
func (it *RunController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	selectedPaths, _ := cmd.Flags().GetStringSlice("project")
	ownerLogin, _ := cmd.Flags().GetString("owner")
	verify, _ := cmd.Flags().GetBool("verify")
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
		logger.Warn("No projects selected, nothing to migrate")
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
				"Would migrate %s -> %s/%s",
				project.PathWithNamespace, owner.Login,
				commands.DestinationRepoName(project.PathWithNamespace),
			)
		}
		return
	}

	if verify {
		projects = it.verifyCloneURLs(ctx, settings, projects)
		if len(projects) == 0 {
			logger.Warn("No reachable projects left, nothing to migrate")
			return
		}
	}

	logger.Infof("Migrating %d projects to %s...", len(projects), owner.Login)
	command := commands.NewMigrateCommand(source, destination, it.progress, settings.Source.Username)
	result := command.MigrateProjects(ctx, projects, owner)
	printReport(result)
}

// verifyCloneURLs drops projects whose clone URL does not answer an
// ls-remote, so the destination is never pointed at a dead source.
func (it *RunController) verifyCloneURLs(
	ctx context.Context,
	settings *entities.Settings,
	projects []entities.Project,
) []entities.Project {
	verifier := gitcheck.NewCloneURLVerifier(settings.Source.Username, settings.Source.Token)

	reachable := make([]entities.Project, 0, len(projects))
	for _, project := range projects {
		if verifyErr := verifier.Verify(ctx, project.HTTPURLToRepo); verifyErr != nil {
			logger.Warnf("Skipping %s: %v", project.PathWithNamespace, verifyErr)
			continue
		}
		reachable = append(reachable, project)
	}
	return reachable
}

// AddFlags adds the run-specific flags to the given Cobra command.
func (it *RunController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("project", nil,
		"Source path of a project to migrate (repeatable; default: all)")
	cmd.Flags().String("owner", "",
		"Destination owner login (default: the authenticated user)")
	cmd.Flags().Bool("verify", false,
		"Check each clone URL with ls-remote before migrating")
}
