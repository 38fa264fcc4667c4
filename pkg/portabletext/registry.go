package portabletext

// BlockRenderer produces the complete markup for a block subtree.
// A registered renderer takes over the whole block: the traversal does not
// descend into its children afterwards.
type BlockRenderer interface {
	RenderBlock(b *Block) string
}

// RendererFunc adapts an ordinary function to a BlockRenderer.
type RendererFunc func(b *Block) string

// RenderBlock calls f(b).
func (f RendererFunc) RenderBlock(b *Block) string {
	return f(b)
}

// Registry holds per-style renderer overrides.
//
// A Registry is not safe for concurrent mutation. Register everything before
// rendering; concurrent renders against an unchanging Registry are safe.
type Registry struct {
	renderers map[Style]BlockRenderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[Style]BlockRenderer)}
}

// Register stores renderer for style, replacing any earlier registration.
func (r *Registry) Register(style Style, renderer BlockRenderer) {
	if r.renderers == nil {
		r.renderers = make(map[Style]BlockRenderer)
	}
	r.renderers[style] = renderer
}

// RegisterFunc is shorthand for Register(style, RendererFunc(fn)).
func (r *Registry) RegisterFunc(style Style, fn func(b *Block) string) {
	r.Register(style, RendererFunc(fn))
}

// Lookup returns the renderer registered for style.
// A nil Registry has no entries.
func (r *Registry) Lookup(style Style) (BlockRenderer, bool) {
	if r == nil {
		return nil, false
	}
	renderer, ok := r.renderers[style]
	return renderer, ok
}
