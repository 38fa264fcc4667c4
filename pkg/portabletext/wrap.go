package portabletext

import "strings"

// wrapRenderer renders a block's children inside tag.
type wrapRenderer struct {
	tag  string
	reg  *Registry
	opts Options
}

// WrapWith returns a renderer that places the rendered children of a block
// inside tag instead of the style's default element. Children are rendered
// with reg and opts, so nested overrides still apply.
//
// When the renderer is registered in the same registry and used with the same
// options it was built with, Render writes the tag pair from its own walk, so
// deep trees under the override cost no more than default rendering. Called
// directly, or from a render with a different registry or options, it renders
// the children in a separate pass.
func WrapWith(tag string, reg *Registry, opts Options) BlockRenderer {
	return &wrapRenderer{tag: tag, reg: reg, opts: opts}
}

// RenderBlock implements BlockRenderer.
func (w *wrapRenderer) RenderBlock(b *Block) string {
	var sb strings.Builder
	sb.WriteString("<" + w.tag + ">")
	sb.WriteString(RenderWithOptions(b.children, w.reg, w.opts))
	sb.WriteString("</" + w.tag + ">")
	return sb.String()
}
