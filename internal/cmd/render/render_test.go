package render

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/sanity-cli/pkg/portabletext"
)

const emojiDoc = `[
	{"_type":"block","style":"normal","children":[
		{"_type":"span","text":"Emoji:"},
		{"_type":"block","style":"h1","children":[{"_type":"span","text":"🚀"}]}
	]}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestInputFormat(t *testing.T) {
	tests := []struct {
		from    string
		path    string
		want    string
		wantErr bool
	}{
		{"", "body.json", "json", false},
		{"", "-", "json", false},
		{"", "notes.md", "markdown", false},
		{"", "NOTES.MARKDOWN", "markdown", false},
		{"json", "notes.md", "json", false},
		{"markdown", "-", "markdown", false},
		{"yaml", "x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.from+"|"+tt.path, func(t *testing.T) {
			got, err := inputFormat(tt.from, tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunRender_JSONFile(t *testing.T) {
	path := writeFile(t, "body.json", emojiDoc)

	var buf bytes.Buffer
	err := runRender(path, &renderOptions{noColor: true, out: &buf})
	require.NoError(t, err)
	assert.Equal(t, "<p>Emoji:<h1>🚀</h1></p>\n", buf.String())
}

func TestRunRender_Stdin(t *testing.T) {
	var buf bytes.Buffer
	opts := &renderOptions{
		noColor: true,
		in:      strings.NewReader(emojiDoc),
		out:     &buf,
	}

	require.NoError(t, runRender("-", opts))
	assert.Equal(t, "<p>Emoji:<h1>🚀</h1></p>\n", buf.String())
}

func TestRunRender_Tags(t *testing.T) {
	var buf bytes.Buffer
	opts := &renderOptions{
		tags:    []string{"h1=strong"},
		noColor: true,
		in:      strings.NewReader(emojiDoc),
		out:     &buf,
	}

	require.NoError(t, runRender("-", opts))
	assert.Equal(t, "<p>Emoji:<strong>🚀</strong></p>\n", buf.String())
}

func TestRunRender_Markdown(t *testing.T) {
	path := writeFile(t, "notes.md", "# Title\n\nSome <b>text</b>.\n\n> quoted\n")

	var buf bytes.Buffer
	require.NoError(t, runRender(path, &renderOptions{noColor: true, out: &buf}))
	assert.Equal(t, "<h1>Title</h1><p>Some text.</p><blockquote>quoted</blockquote>\n", buf.String())
}

func TestRunRender_MarkdownToJSON(t *testing.T) {
	var buf bytes.Buffer
	opts := &renderOptions{
		from:    "markdown",
		format:  "json",
		noColor: true,
		in:      strings.NewReader("## Sub\n\npara"),
		out:     &buf,
	}

	require.NoError(t, runRender("-", opts))

	doc, err := portabletext.DecodeString(buf.String())
	require.NoError(t, err)
	assert.Equal(t, "<h2>Sub</h2><p>para</p>", portabletext.Render(doc, nil))
}

func TestRunRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		input  string
		opts   renderOptions
		errMsg string
		is     error
	}{
		{
			name:   "missing file",
			path:   filepath.Join(os.TempDir(), "does-not-exist.json"),
			errMsg: "failed to read input",
		},
		{
			name:   "invalid json",
			path:   "-",
			input:  `{"not":"an array"}`,
			errMsg: "failed to parse document",
		},
		{
			name:   "empty block",
			path:   "-",
			input:  `[{"_type":"block","style":"h1","children":[]}]`,
			errMsg: "[0]",
			is:     portabletext.ErrEmptyBlock,
		},
		{
			name:   "span with children",
			path:   "-",
			input:  `[{"_type":"block","children":[{"_type":"span","text":"x","children":[{"_type":"span","text":"y"}]}]}]`,
			errMsg: "[0].children[0]",
			is:     portabletext.ErrLeafChildren,
		},
		{
			name:   "invalid format",
			path:   "-",
			opts:   renderOptions{format: "pdf"},
			errMsg: "invalid format",
		},
		{
			name:   "invalid from",
			path:   "-",
			opts:   renderOptions{from: "yaml"},
			errMsg: "invalid --from",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.noColor = true
			opts.in = strings.NewReader(tt.input)
			opts.out = &bytes.Buffer{}

			err := runRender(tt.path, &opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is))
			}
		})
	}
}

func TestNewCmdRender_Execute(t *testing.T) {
	cmd := NewCmdRender()
	cmd.Flags().Bool("no-color", true, "")

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(emojiDoc))
	cmd.SetArgs([]string{"-", "--format", "html"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "<p>Emoji:<h1>🚀</h1></p>\n", out.String())
}
