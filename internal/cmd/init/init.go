// Package init provides the init command for sny.
package init

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sanity-cli/api"
	"github.com/open-cli-collective/sanity-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sanity-cli/internal/config"
)

type initOptions struct {
	projectID string
	dataset   string
	noVerify  bool

	configPath string
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize sny configuration",
		Long: `Initialize sny with your Sanity project details.

This command will guide you through setting up your project ID, dataset
and an optional API token. The configuration will be saved to
~/.config/sny/config.yml.

A token is only needed for private datasets and draft content. To create one:
  1. Open https://www.sanity.io/manage and select your project
  2. Go to API → Tokens and click "Add API token"
  3. Copy the token (it won't be shown again)`,
		Example: `  # Interactive setup
  sny init

  # Pre-populate the project
  sny init --project abc123 --dataset production`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath = cmdutil.ConfigPath(cmd)
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.projectID, "project", "", "Sanity project ID")
	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "Dataset name (e.g., production)")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Skip connection verification")

	return cmd
}

func runInit(opts *initOptions) error {
	configPath := opts.configPath

	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		ProjectID:   opts.projectID,
		Dataset:     opts.dataset,
		Perspective: api.PerspectivePublished,
	}
	if cfg.Dataset == "" {
		cfg.Dataset = "production"
	}

	if err := newForm(cfg).Run(); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !opts.noVerify {
		fmt.Print("Verifying connection... ")
		if _, err := cmdutil.VerifyConnection(context.Background(), cfg.NewClient()); err != nil {
			fmt.Println("failed!")
			return fmt.Errorf("connection verification failed: %w", err)
		}
		fmt.Println("success!")
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println(`  sny query '*[_type == "post"]{_id, _type, title}'`)
	fmt.Println("  sny document view <document-id>")

	return nil
}

func newForm(cfg *config.Config) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project ID").
				Description("Found at sanity.io/manage or in sanity.config.ts").
				Placeholder("abc123xy").
				Value(&cfg.ProjectID).
				Validate(requireValue("project ID")),

			huh.NewInput().
				Title("Dataset").
				Placeholder("production").
				Value(&cfg.Dataset).
				Validate(requireValue("dataset")),

			huh.NewInput().
				Title("API Token (optional)").
				Description("Needed for private datasets and drafts").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Token),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Perspective").
				Description("Which version of documents queries should see").
				Options(
					huh.NewOption("Published", api.PerspectivePublished),
					huh.NewOption("Drafts over published", api.PerspectiveDrafts),
					huh.NewOption("Raw (everything)", api.PerspectiveRaw),
				).
				Value(&cfg.Perspective),

			huh.NewConfirm().
				Title("Use the API CDN?").
				Description("Faster cached reads; not available for authenticated draft reads").
				Value(&cfg.UseCDN),
		),
	)
}

func requireValue(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
