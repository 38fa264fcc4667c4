// Package cmdutil holds helpers shared by sny commands.
package cmdutil

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sanity-cli/api"
	"github.com/open-cli-collective/sanity-cli/internal/config"
	"github.com/open-cli-collective/sanity-cli/internal/view"
	"github.com/open-cli-collective/sanity-cli/pkg/portabletext"
)

// Document output formats accepted by --format.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatPretty   = "pretty"
	FormatJSON     = "json"
)

var tagPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// ConfigPath returns the --config flag value, or the default path.
func ConfigPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

// LoadConfig loads and validates the configuration at path.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'sny init' to configure)", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'sny init' to configure)", err)
	}

	return cfg, nil
}

// LoadClient loads the configuration at path and builds an API client from it.
func LoadClient(path string) (*api.Client, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg.NewClient(), nil
}

// ValidateDocumentFormat checks a --format value.
func ValidateDocumentFormat(format string) error {
	switch format {
	case FormatHTML, FormatMarkdown, FormatPretty, FormatJSON:
		return nil
	}
	return fmt.Errorf("invalid format %q: must be one of html, markdown, pretty, json", format)
}

// TagRegistry builds a registry from --tag values of the form style=tag.
// Each listed style renders its children inside the given tag instead of
// the default one.
func TagRegistry(specs []string, opts portabletext.Options) (*portabletext.Registry, error) {
	reg := portabletext.NewRegistry()
	for _, spec := range specs {
		name, tag, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --tag %q: expected style=tag", spec)
		}

		style, err := portabletext.ParseStyle(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("invalid --tag %q: %w", spec, err)
		}

		tag = strings.TrimSpace(tag)
		if !tagPattern.MatchString(tag) {
			return nil, fmt.Errorf("invalid --tag %q: %q is not a tag name", spec, tag)
		}

		reg.Register(style, portabletext.WrapWith(tag, reg, opts))
	}
	return reg, nil
}

// WriteDocument writes doc to w in the requested format.
func WriteDocument(w io.Writer, doc portabletext.Document, reg *portabletext.Registry, format string, opts portabletext.Options, noColor bool) error {
	switch format {
	case FormatHTML:
		fmt.Fprintln(w, portabletext.RenderWithOptions(doc, reg, opts))
		return nil

	case FormatMarkdown, FormatPretty:
		md, err := portabletext.ToMarkdownWithOptions(doc, reg, opts)
		if err != nil {
			return err
		}
		if format == FormatMarkdown {
			fmt.Fprintln(w, md)
			return nil
		}
		renderer := view.NewRenderer(view.FormatTable, noColor)
		renderer.SetWriter(w)
		return renderer.RenderMarkdown(md)

	case FormatJSON:
		renderer := view.NewRenderer(view.FormatJSON, noColor)
		renderer.SetWriter(w)
		return renderer.RenderJSON(doc)
	}

	return ValidateDocumentFormat(format)
}
