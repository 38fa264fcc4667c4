// Package root provides the root command for the sny CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sanity-cli/internal/cmd/completion"
	"github.com/open-cli-collective/sanity-cli/internal/cmd/configcmd"
	"github.com/open-cli-collective/sanity-cli/internal/cmd/document"
	initcmd "github.com/open-cli-collective/sanity-cli/internal/cmd/init"
	"github.com/open-cli-collective/sanity-cli/internal/cmd/query"
	"github.com/open-cli-collective/sanity-cli/internal/cmd/render"
	"github.com/open-cli-collective/sanity-cli/internal/logging"
	"github.com/open-cli-collective/sanity-cli/internal/view"
	"github.com/open-cli-collective/sanity-cli/internal/version"
)

// NewCmdRoot creates the root command for sny.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sny",
		Short: "A command-line interface for Sanity content",
		Long: `sny is a CLI tool for querying Sanity datasets and rendering
Portable Text.

It runs GROQ queries, fetches documents, and renders rich-text fields
to HTML, Markdown, or the terminal. Local Portable Text and Markdown
files can be rendered without a project.

Get started by running: sny init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			logging.SetupLogger(verbosity)

			output, _ := cmd.Flags().GetString("output")
			return view.ValidateFormat(output)
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/sny/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (-v info, -vv debug, -vvv trace)")

	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(query.NewCmdQuery())
	cmd.AddCommand(document.NewCmdDocument())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
