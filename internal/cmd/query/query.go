// Package query provides the query command for running GROQ queries.
package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sanity-cli/api"
	"github.com/open-cli-collective/sanity-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sanity-cli/internal/logging"
	"github.com/open-cli-collective/sanity-cli/internal/view"
)

type queryOptions struct {
	groq        string
	params      []string
	perspective string

	configPath string
	output     string
	noColor    bool
	out        io.Writer
}

// NewCmdQuery creates the query command.
func NewCmdQuery() *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query <groq>",
		Short: "Run a GROQ query",
		Long: `Run a GROQ query against the configured dataset.

Parameters are passed with --param name=value. Values that parse as JSON
are sent as-is (numbers, booleans, arrays); anything else is sent as a string.

When the result is a list of documents it is shown as a table; any other
result is printed as JSON.`,
		Example: `  # List posts
  sny query '*[_type == "post"]{_id, _type, title}'

  # Use parameters
  sny query '*[_type == $type][0...$n]' --param type=post --param n=5

  # Read draft content
  sny query '*[_id == $id]' --param id=post-1 --perspective drafts

  # Raw JSON for scripting
  sny query 'count(*)' -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.groq = args[0]
			opts.configPath = cmdutil.ConfigPath(cmd)
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runQuery(opts, nil)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.params, "param", "p", nil, "Query parameter as name=value (repeatable)")
	cmd.Flags().StringVar(&opts.perspective, "perspective", "", "Override perspective: raw, published, drafts")

	return cmd
}

// parseParams turns name=value pairs into query parameters.
func parseParams(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	params := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimPrefix(strings.TrimSpace(name), "$")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q: expected name=value", pair)
		}

		var decoded interface{}
		if err := json.Unmarshal([]byte(value), &decoded); err == nil {
			params[name] = decoded
		} else {
			params[name] = value
		}
	}
	return params, nil
}

func runQuery(opts *queryOptions, client *api.Client) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	params, err := parseParams(opts.params)
	if err != nil {
		return err
	}

	if client == nil {
		client, err = cmdutil.LoadClient(opts.configPath)
		if err != nil {
			return err
		}
	}

	switch opts.perspective {
	case "":
	case api.PerspectiveRaw, api.PerspectivePublished, api.PerspectiveDrafts:
		client.Perspective = opts.perspective
	default:
		return fmt.Errorf("invalid perspective %q: must be raw, published or drafts", opts.perspective)
	}

	if opts.out == nil {
		opts.out = os.Stdout
	}

	logger := logging.GetLogger("query")
	logger.Debug().Str("query", api.CompactQuery(opts.groq)).Int("params", len(params)).Msg("Running query")

	resp, err := client.Query(context.Background(), opts.groq, params)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(opts.out)

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(resultOrNull(resp.Result))
	}

	var docs []api.Document
	if err := json.Unmarshal(resp.Result, &docs); err != nil || !allDocuments(docs) {
		if err := renderer.RenderJSON(resultOrNull(resp.Result)); err != nil {
			return err
		}
		if renderer.Format() == view.FormatTable {
			renderer.Faint(footer(-1, resp.MS))
		}
		return nil
	}

	if len(docs) == 0 {
		renderer.RenderText("No results found.")
		return nil
	}

	headers := []string{"ID", "TYPE", "TITLE", "UPDATED"}
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		updated := ""
		if !d.UpdatedAt.IsZero() {
			updated = humanize.Time(d.UpdatedAt.Time)
		}
		rows = append(rows, []string{d.ID, d.Type, view.Truncate(titleOf(d), 50), updated})
	}

	renderer.RenderTable(headers, rows)
	if renderer.Format() == view.FormatTable {
		renderer.Faint(footer(len(docs), resp.MS))
	}

	return nil
}

func resultOrNull(raw json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage("null")
	}
	return raw
}

// allDocuments reports whether every element carries an _id, i.e. the
// result is a document list rather than a projection of scalars.
func allDocuments(docs []api.Document) bool {
	for _, d := range docs {
		if d.ID == "" {
			return false
		}
	}
	return true
}

// titleOf picks a human readable label from common title fields.
func titleOf(d api.Document) string {
	for _, field := range []string{"title", "name", "slug"} {
		raw, ok := d.Field(field)
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		var slug struct {
			Current string `json:"current"`
		}
		if err := json.Unmarshal(raw, &slug); err == nil && slug.Current != "" {
			return slug.Current
		}
	}
	return ""
}

func footer(count, ms int) string {
	took := humanize.Comma(int64(ms)) + "ms"
	if count < 0 {
		return "\n(query took " + took + ")"
	}
	return fmt.Sprintf("\n(%s %s in %s)", humanize.Comma(int64(count)), english.PluralWord(count, "document", ""), took)
}
