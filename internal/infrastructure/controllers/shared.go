package controllers

import (
	"slices"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
)

// loadSettings resolves the configuration file from the --config flag or
// the default search locations and parses it.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		var err error
		configPath, err = entities.FindConfigFile()
		if err != nil {
			return nil, err
		}
	}

	logger.Infof("Using config file: %s", configPath)
	return entities.NewSettings(configPath)
}

// filterProjects narrows the listing to the selected source paths. An
// empty selection keeps everything.
func filterProjects(projects []entities.Project, selectedPaths []string) []entities.Project {
	if len(selectedPaths) == 0 {
		return projects
	}

	filtered := make([]entities.Project, 0, len(selectedPaths))
	for _, project := range projects {
		if slices.Contains(selectedPaths, project.PathWithNamespace) {
			filtered = append(filtered, project)
		}
	}
	return filtered
}

// selectOwner picks the destination namespace: the owner whose login
// matches the --owner flag, or the authenticated identity (always first)
// when the flag is empty.
func selectOwner(owners []entities.Owner, login string) (entities.Owner, bool) {
	if login == "" {
		if len(owners) == 0 {
			return entities.Owner{}, false
		}
		return owners[0], true
	}

	for _, owner := range owners {
		if owner.Login == login {
			return owner, true
		}
	}
	return entities.Owner{}, false
}

// printReport prints every collected error line and the final counts,
// regardless of whether any failures occurred.
func printReport(result entities.MigrationResult) {
	for _, line := range result.Errors {
		logger.Error(line)
	}
	logger.Infof(
		"Batch complete: %d succeeded, %d skipped, %d failed",
		len(result.Succeeded), len(result.Skipped), len(result.Failed),
	)
}
