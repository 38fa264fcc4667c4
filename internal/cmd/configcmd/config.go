// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sny configuration",
		Long:  `Commands for viewing, testing, and clearing sny configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

// envVars lists every environment variable the configuration reads.
var envVars = []string{
	"SNY_PROJECT_ID", "SNY_DATASET", "SNY_API_VERSION", "SNY_API_HOST",
	"SNY_TOKEN", "SNY_PERSPECTIVE", "SNY_USE_CDN", "SNY_OUTPUT_FORMAT",
	"SANITY_PROJECT_ID", "SANITY_DATASET", "SANITY_API_VERSION", "SANITY_API_HOST",
	"SANITY_TOKEN", "SANITY_PERSPECTIVE", "SANITY_USE_CDN",
}
