package entities

import (
	"github.com/spf13/cobra"
)

// ControllerBind holds the Cobra command metadata of a controller.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is a CLI entrypoint wired into the root command.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string)
}
