package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitmigrate/internal"
)

// flagBinder is implemented by controllers that carry their own flags.
type flagBinder interface {
	AddFlags(cmd *cobra.Command)
}

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "gitmigrate",
		Short: "Migrate repositories between Git hosting platforms",
		Long: `A CLI tool that migrates repositories from a GitLab (or GitHub) source
to a Gitea destination through the destination's mirror-import API,
optionally followed by a deploy-key migration pass.

Typical flow:
  gitmigrate list     Enumerate the source projects
  gitmigrate owners   Pick a destination owner
  gitmigrate run      Migrate the selected projects
  gitmigrate keys     Copy the deploy keys afterwards`,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Run: func(command *cobra.Command, arguments []string) {
				if verbose, _ := command.Flags().GetBool("verbose"); verbose {
					logger.SetLevel(logger.DebugLevel)
				}
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if binder, ok := ctrl.(flagBinder); ok {
			binder.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cobraRoot := buildRootCommand()

	// Inject controllers via DIG
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'gitmigrate': %s", err)
	}
}
