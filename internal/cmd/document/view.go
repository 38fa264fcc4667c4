package document

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sanity-cli/api"
	"github.com/open-cli-collective/sanity-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sanity-cli/internal/logging"
	"github.com/open-cli-collective/sanity-cli/internal/view"
	"github.com/open-cli-collective/sanity-cli/pkg/portabletext"
)

type viewOptions struct {
	field    string
	format   string
	noEscape bool
	tags     []string
	header   bool

	configPath string
	noColor    bool
	out        io.Writer
}

// NewCmdView creates the document view command.
func NewCmdView() *cobra.Command {
	opts := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view <document-id>",
		Short: "Render a document's Portable Text field",
		Long: `Fetch a document and render one of its Portable Text fields.

Formats:
  html      HTML fragment (default)
  markdown  Markdown converted from the HTML rendering
  pretty    Markdown styled for the terminal
  json      the decoded Portable Text blocks`,
		Example: `  # Render the body field as HTML
  sny document view post-1

  # Render another field as terminal markdown
  sny document view post-1 --field excerpt --format pretty

  # Render headings in custom tags
  sny document view post-1 --tag h1=header --tag blockquote=aside`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath = cmdutil.ConfigPath(cmd)
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runView(args[0], opts, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.field, "field", "f", "body", "Portable Text field to render")
	cmd.Flags().StringVar(&opts.format, "format", cmdutil.FormatHTML, "Output format: html, markdown, pretty, json")
	cmd.Flags().BoolVar(&opts.noEscape, "no-escape", false, "Emit text without HTML escaping")
	cmd.Flags().StringArrayVar(&opts.tags, "tag", nil, "Render a style in a different tag, as style=tag (repeatable)")
	cmd.Flags().BoolVar(&opts.header, "header", false, "Print document metadata before the content")

	return cmd
}

func runView(id string, opts *viewOptions, client *api.Client) error {
	if opts.format == "" {
		opts.format = cmdutil.FormatHTML
	}
	if err := cmdutil.ValidateDocumentFormat(opts.format); err != nil {
		return err
	}

	renderOpts := portabletext.Options{DisableEscaping: opts.noEscape}
	reg, err := cmdutil.TagRegistry(opts.tags, renderOpts)
	if err != nil {
		return err
	}

	if client == nil {
		client, err = cmdutil.LoadClient(opts.configPath)
		if err != nil {
			return err
		}
	}

	if opts.out == nil {
		opts.out = os.Stdout
	}

	logger := logging.GetLogger("document")
	done := logging.LogOperationStart(logger, "document view")
	defer done()

	doc, err := client.GetDocument(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	body, err := doc.PortableText(opts.field)
	if err != nil {
		return err
	}
	logger.Debug().Str("id", doc.ID).Str("field", opts.field).Int("blocks", len(body)).Msg("Decoded field")

	if opts.header {
		renderer := view.NewRenderer(view.FormatTable, opts.noColor)
		renderer.SetWriter(opts.out)
		renderer.RenderKeyValue("ID", doc.ID)
		renderer.RenderKeyValue("Type", doc.Type)
		if !doc.UpdatedAt.IsZero() {
			renderer.RenderKeyValue("Updated", humanize.Time(doc.UpdatedAt.Time))
		}
		fmt.Fprintln(opts.out)
	}

	if len(body) == 0 {
		fmt.Fprintln(opts.out, "(No content)")
		return nil
	}

	return cmdutil.WriteDocument(opts.out, body, reg, opts.format, renderOpts, opts.noColor)
}
