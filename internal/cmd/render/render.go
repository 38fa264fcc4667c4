// Package render provides the render command for local Portable Text and Markdown input.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sanity-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sanity-cli/internal/logging"
	"github.com/open-cli-collective/sanity-cli/pkg/portabletext"
)

// Input formats accepted by --from.
const (
	fromJSON     = "json"
	fromMarkdown = "markdown"
)

type renderOptions struct {
	from     string
	format   string
	noEscape bool
	tags     []string

	noColor bool
	in      io.Reader
	out     io.Writer
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a local Portable Text or Markdown file",
		Long: `Render Portable Text from a file or standard input.

Input is Portable Text JSON (an array of blocks) unless --from markdown is
given or the file ends in .md or .markdown. Markdown headings, paragraphs
and blockquotes become blocks of the matching style.`,
		Example: `  # Render a JSON export to HTML
  sny render body.json

  # Pipe from a query
  sny query '*[_id == "post-1"][0].body' -o json | sny render -

  # Convert Markdown to Portable Text JSON
  sny render notes.md --format json

  # Preview in the terminal
  sny render body.json --format pretty`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) > 0 {
				path = args[0]
			}
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			opts.in = cmd.InOrStdin()
			return runRender(path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "Input format: json, markdown (default: by file extension)")
	cmd.Flags().StringVar(&opts.format, "format", cmdutil.FormatHTML, "Output format: html, markdown, pretty, json")
	cmd.Flags().BoolVar(&opts.noEscape, "no-escape", false, "Emit text without HTML escaping")
	cmd.Flags().StringArrayVar(&opts.tags, "tag", nil, "Render a style in a different tag, as style=tag (repeatable)")

	return cmd
}

// inputFormat resolves --from, falling back to the file extension.
func inputFormat(from, path string) (string, error) {
	switch from {
	case fromJSON, fromMarkdown:
		return from, nil
	case "":
	default:
		return "", fmt.Errorf("invalid --from %q: must be json or markdown", from)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return fromMarkdown, nil
	}
	return fromJSON, nil
}

func runRender(path string, opts *renderOptions) error {
	if opts.format == "" {
		opts.format = cmdutil.FormatHTML
	}
	if err := cmdutil.ValidateDocumentFormat(opts.format); err != nil {
		return err
	}

	from, err := inputFormat(opts.from, path)
	if err != nil {
		return err
	}

	renderOpts := portabletext.Options{DisableEscaping: opts.noEscape}
	reg, err := cmdutil.TagRegistry(opts.tags, renderOpts)
	if err != nil {
		return err
	}

	var src []byte
	if path == "-" {
		in := opts.in
		if in == nil {
			in = os.Stdin
		}
		src, err = io.ReadAll(in)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	logger := logging.GetLogger("render")
	logger.Debug().Str("path", path).Str("from", from).Str("format", opts.format).Int("bytes", len(src)).Msg("Rendering input")

	var doc portabletext.Document
	switch from {
	case fromMarkdown:
		doc, err = portabletext.FromMarkdown(src)
		if err != nil {
			return fmt.Errorf("failed to parse markdown: %w", err)
		}
	default:
		doc, err = portabletext.DecodeString(string(src))
		if err != nil {
			return err
		}
	}

	if opts.out == nil {
		opts.out = os.Stdout
	}

	return cmdutil.WriteDocument(opts.out, doc, reg, opts.format, renderOpts, opts.noColor)
}
