package portabletext

import (
	"html"
	"strings"
)

// Options configures rendering.
type Options struct {
	// DisableEscaping writes text leaves verbatim instead of HTML-escaping them.
	DisableEscaping bool
}

// Render converts doc to HTML using reg for overrides and the default table
// for every other style. reg may be nil. Top-level nodes are rendered
// independently and concatenated in order; no wrapping root element is added.
func Render(doc Document, reg *Registry) string {
	return RenderWithOptions(doc, reg, Options{})
}

// RenderWithOptions is Render with configurable escaping.
//
// It panics if a block's style has neither a registered renderer nor a
// default tag.
func RenderWithOptions(doc Document, reg *Registry, opts Options) string {
	var sb strings.Builder

	// Walk only fails when the callback does, and this one never does.
	_ = Walk(doc, func(n Node, entering bool) (WalkStatus, error) {
		switch node := n.(type) {
		case *Text:
			if !entering {
				return WalkContinue, nil
			}
			if opts.DisableEscaping {
				sb.WriteString(node.text)
			} else {
				sb.WriteString(html.EscapeString(node.text))
			}

		case *Block:
			var tag string
			if renderer, ok := reg.Lookup(node.style); ok {
				w, inline := renderer.(*wrapRenderer)
				if !inline || w.reg != reg || w.opts != opts {
					if entering {
						sb.WriteString(renderer.RenderBlock(node))
					}
					return WalkSkipChildren, nil
				}
				tag = w.tag
			} else {
				tag = mustDefaultTag(node.style)
			}

			if entering {
				sb.WriteString("<")
				sb.WriteString(tag)
				sb.WriteString(">")
			} else {
				sb.WriteString("</")
				sb.WriteString(tag)
				sb.WriteString(">")
			}
		}
		return WalkContinue, nil
	})

	return sb.String()
}
