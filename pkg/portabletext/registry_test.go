package portabletext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()

	_, ok := reg.Lookup(StyleH1)
	assert.False(t, ok)

	reg.RegisterFunc(StyleH1, func(*Block) string { return "h1" })

	renderer, ok := reg.Lookup(StyleH1)
	require.True(t, ok)
	assert.Equal(t, "h1", renderer.RenderBlock(MustBlock(StyleH1, NewText("x"))))

	_, ok = reg.Lookup(StyleH2)
	assert.False(t, ok)
}

func TestRegistry_Overwrite(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterFunc(StyleH3, func(*Block) string { return "old" })
	reg.RegisterFunc(StyleH3, func(*Block) string { return "new" })

	renderer, ok := reg.Lookup(StyleH3)
	require.True(t, ok)
	assert.Equal(t, "new", renderer.RenderBlock(MustBlock(StyleH3, NewText("x"))))
}

func TestRegistry_NilAndZeroValue(t *testing.T) {
	var nilReg *Registry
	_, ok := nilReg.Lookup(StyleNormal)
	assert.False(t, ok)

	var zero Registry
	zero.RegisterFunc(StyleNormal, func(*Block) string { return "z" })
	_, ok = zero.Lookup(StyleNormal)
	assert.True(t, ok)
}

func TestDefaultTag_CoversEveryStyle(t *testing.T) {
	seen := make(map[string]Style)
	for _, style := range Styles() {
		tag, ok := DefaultTag(style)
		require.True(t, ok, "no default tag for %s", style)
		prev, dup := seen[tag]
		assert.False(t, dup, "%s and %s share tag %q", prev, style, tag)
		seen[tag] = style
	}

	_, ok := DefaultTag(Style(len(Styles())))
	assert.False(t, ok)
}
