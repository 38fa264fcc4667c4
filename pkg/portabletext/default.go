package portabletext

// DefaultTag returns the HTML element used for style when no custom renderer
// is registered. ok is false only for values outside the Style constants.
func DefaultTag(style Style) (tag string, ok bool) {
	switch style {
	case StyleH1:
		return "h1", true
	case StyleH2:
		return "h2", true
	case StyleH3:
		return "h3", true
	case StyleH4:
		return "h4", true
	case StyleH5:
		return "h5", true
	case StyleH6:
		return "h6", true
	case StyleNormal:
		return "p", true
	case StyleBlockquote:
		return "blockquote", true
	}
	return "", false
}

// Default renders a block with the built-in table only, ignoring any registry.
// Register it to restore default output for a style, or call it from a custom
// renderer to wrap the default markup. It always escapes text; use
// DefaultWithOptions inside a render with DisableEscaping.
var Default = DefaultWithOptions(Options{})

// DefaultWithOptions is Default rendering with opts.
func DefaultWithOptions(opts Options) BlockRenderer {
	return RendererFunc(func(b *Block) string {
		return RenderWithOptions(Document{b}, nil, opts)
	})
}

// mustDefaultTag is the last resort of the traversal. A style without a tag
// means the table fell out of step with the Style constants.
func mustDefaultTag(style Style) string {
	tag, ok := DefaultTag(style)
	if !ok {
		panic("portabletext: no renderer registered and no default tag for " + style.String())
	}
	return tag
}
