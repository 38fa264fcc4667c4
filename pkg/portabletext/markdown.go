package portabletext

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// mdParser parses plain CommonMark; inline formatting is read but not kept.
var mdParser = goldmark.New()

// ToMarkdown renders doc to HTML and converts the result to Markdown.
func ToMarkdown(doc Document, reg *Registry) (string, error) {
	return ToMarkdownWithOptions(doc, reg, Options{})
}

// ToMarkdownWithOptions is ToMarkdown with rendering options.
func ToMarkdownWithOptions(doc Document, reg *Registry, opts Options) (string, error) {
	rendered := RenderWithOptions(doc, reg, opts)
	if rendered == "" {
		return "", nil
	}

	markdown, err := htmltomarkdown.ConvertString(rendered)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}

// FromMarkdown builds a Document from Markdown source.
//
// Headings map to H1-H6, paragraphs to Normal and block quotes to Blockquote.
// List items and code blocks become Normal blocks. Inline formatting is
// flattened to plain text and blocks without text are dropped.
func FromMarkdown(src []byte) (Document, error) {
	doc := Document{}
	if len(src) == 0 {
		return doc, nil
	}

	root := mdParser.Parser().Parse(text.NewReader(src))
	c := &mdConverter{source: src}
	for _, b := range c.convertChildren(root) {
		doc = append(doc, b)
	}
	return doc, nil
}

// mdConverter holds state during AST conversion.
type mdConverter struct {
	source []byte
}

func (c *mdConverter) convertChildren(n ast.Node) []*Block {
	var blocks []*Block
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		blocks = append(blocks, c.convertNode(child)...)
	}
	return blocks
}

func (c *mdConverter) convertNode(n ast.Node) []*Block {
	switch node := n.(type) {
	case *ast.Heading:
		return c.textBlock(StyleH1+Style(node.Level-1), c.inlineText(node))
	case *ast.Paragraph, *ast.TextBlock:
		return c.textBlock(StyleNormal, c.inlineText(node))
	case *ast.Blockquote:
		return c.convertBlockquote(node)
	case *ast.List:
		return c.convertChildren(node)
	case *ast.ListItem:
		return c.convertChildren(node)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return c.textBlock(StyleNormal, c.codeText(node))
	default:
		// Thematic breaks, raw HTML and anything else have no block style.
		return nil
	}
}

// convertBlockquote flattens a single-paragraph quote into one Blockquote
// block of text; richer quotes keep their inner blocks as children.
func (c *mdConverter) convertBlockquote(n *ast.Blockquote) []*Block {
	inner := c.convertChildren(n)
	if len(inner) == 0 {
		return nil
	}
	if len(inner) == 1 && inner[0].style == StyleNormal {
		return []*Block{{style: StyleBlockquote, children: inner[0].children}}
	}

	children := make([]Node, len(inner))
	for i, b := range inner {
		children[i] = b
	}
	return []*Block{{style: StyleBlockquote, children: children}}
}

func (c *mdConverter) textBlock(style Style, s string) []*Block {
	if s == "" {
		return nil
	}
	return []*Block{{style: style, children: []Node{NewText(s)}}}
}

// inlineText concatenates the text under n, turning soft breaks into spaces.
func (c *mdConverter) inlineText(n ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := child.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(c.source))
			if node.HardLineBreak() {
				sb.WriteString("\n")
			} else if node.SoftLineBreak() {
				sb.WriteString(" ")
			}
		case *ast.String:
			sb.Write(node.Value)
		case *ast.AutoLink:
			sb.Write(node.Label(c.source))
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

func (c *mdConverter) codeText(n ast.Node) string {
	var code strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(c.source))
	}
	return strings.TrimSuffix(code.String(), "\n")
}
