package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sanity-cli/api"
	"github.com/open-cli-collective/sanity-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sanity-cli/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current sny configuration with value source indicators.`,
		Example: `  # Show current config
  sny config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmdutil.ConfigPath(cmd), noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

// maskToken keeps the first and last four characters of long secrets.
func maskToken(s string) string {
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}

func runShow(configPath string, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, fallback string, envNames ...string) {
		_, _ = bold.Fprintf(w, "%-13s", label+":")
		if value == "" {
			if fallback != "" {
				fmt.Fprint(w, fallback)
				_, _ = dim.Fprintln(w, "  (source: default)")
				return
			}
			_, _ = dim.Fprintln(w, "-")
			return
		}

		display := value
		if strings.Contains(strings.ToLower(label), "token") {
			display = maskToken(value)
		}
		fmt.Fprint(w, display)

		source := "config"
		for _, name := range envNames {
			if v := os.Getenv(name); v != "" && v == value {
				source = name
				break
			}
		}
		if source == "config" && (fileErr != nil || fileValue != value) {
			source = "-"
		}

		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Project ID", cfg.ProjectID, fileCfg.ProjectID, "", "SNY_PROJECT_ID", "SANITY_PROJECT_ID")
	printField("Dataset", cfg.Dataset, fileCfg.Dataset, "", "SNY_DATASET", "SANITY_DATASET")
	printField("API Version", cfg.APIVersion, fileCfg.APIVersion, api.DefaultAPIVersion, "SNY_API_VERSION", "SANITY_API_VERSION")
	printField("API Host", cfg.APIHost, fileCfg.APIHost, api.DefaultAPIHost, "SNY_API_HOST", "SANITY_API_HOST")
	printField("Use CDN", boolString(cfg.UseCDN), boolString(fileCfg.UseCDN), "", "SNY_USE_CDN", "SANITY_USE_CDN")
	printField("Token", cfg.Token, fileCfg.Token, "", "SNY_TOKEN", "SANITY_TOKEN")
	printField("Perspective", cfg.Perspective, fileCfg.Perspective, "", "SNY_PERSPECTIVE", "SANITY_PERSPECTIVE")

	fmt.Fprintln(w)
	if cfg.ProjectID != "" {
		_, _ = dim.Fprintf(w, "API URL: %s\n", cfg.BaseURL())
	}
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

func boolString(b bool) string {
	if !b {
		return ""
	}
	return strconv.FormatBool(b)
}
