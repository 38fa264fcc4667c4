package configcmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sanity-cli/api"
	"github.com/open-cli-collective/sanity-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sanity-cli/internal/config"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test connectivity with the configured project",
		Long:  `Test that sny can query your Sanity dataset with the current configuration.`,
		Example: `  # Test connection
  sny config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			cfg, err := cmdutil.LoadConfig(cmdutil.ConfigPath(cmd))
			if err != nil {
				return err
			}
			return runTest(cfg, nil, noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

// runTest checks connectivity. client may be injected for tests; otherwise
// one is built from cfg.
func runTest(cfg *config.Config, client *api.Client, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}
	if client == nil {
		client = cfg.NewClient()
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Fprintf(w, "Testing connection to %s (dataset %s)...\n", cfg.BaseURL(), cfg.Dataset)

	ms, err := cmdutil.VerifyConnection(context.Background(), client)
	if err != nil {
		_, _ = red.Fprintln(w, "✗", err)
		fmt.Fprintln(w, "\nCheck your settings with: sny config show")
		fmt.Fprintln(w, "Reconfigure with: sny init")
		return err
	}

	_, _ = green.Fprintln(w, "✓ Dataset reachable")
	if cfg.Token != "" {
		_, _ = green.Fprintln(w, "✓ Token accepted")
	}
	fmt.Fprintf(w, "\nQuery answered in %dms\n", ms)

	return nil
}
