// Package portabletext renders Sanity Portable Text documents to HTML.
//
// A Document is an ordered list of nodes. Blocks carry a Style and own a
// non-empty list of children; Text leaves carry literal text. Rendering is
// driven by a Registry of per-style renderers with a fixed default table as
// fallback, and walks the tree with an explicit work list so that nesting depth
// is limited only by available memory.
package portabletext

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Structural problems detected while building a tree.
var (
	ErrEmptyBlock   = errors.New("block has no children")
	ErrLeafChildren = errors.New("text node cannot have children")
	ErrNilNode      = errors.New("nil node")
	ErrUnknownType  = errors.New("unknown node type")
)

// StructuralError reports an invalid tree shape at construction or decode time.
type StructuralError struct {
	Path string // location of the offending node, e.g. "[0].children[2]"; empty for constructors
	Err  error
}

func (e *StructuralError) Error() string {
	if e.Path == "" {
		return "invalid node: " + e.Err.Error()
	}
	return fmt.Sprintf("invalid node at %s: %v", e.Path, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// Node is either a *Text leaf or a *Block.
type Node interface {
	node()
}

// Document is an ordered sequence of top-level nodes. Nil entries are
// skipped when walking or rendering.
type Document []Node

// Text is a run of plain text.
type Text struct {
	text  string
	marks []string
}

// NewText creates a text leaf. Marks are kept as metadata and are not rendered.
func NewText(text string, marks ...string) *Text {
	return &Text{text: text, marks: append([]string(nil), marks...)}
}

func (*Text) node() {}

// Text returns the literal text content.
func (t *Text) Text() string { return t.text }

// Marks returns a copy of the mark names applied to the text.
func (t *Text) Marks() []string { return append([]string(nil), t.marks...) }

// MarkDef is an inline mark definition attached to a block.
// The body is kept verbatim; it carries no rendering semantics.
type MarkDef struct {
	Key  string
	Type string
	Raw  json.RawMessage
}

// BlockMeta holds optional block metadata.
type BlockMeta struct {
	Key      string
	MarkDefs []MarkDef
}

// Block is a structural element whose rendering wraps its children.
type Block struct {
	style    Style
	children []Node
	meta     BlockMeta
}

func (*Block) node() {}

// NewBlock creates a block. It fails with a *StructuralError if children is
// empty or contains a nil node.
func NewBlock(style Style, children ...Node) (*Block, error) {
	return NewBlockWithMeta(style, BlockMeta{}, children...)
}

// NewBlockWithMeta creates a block carrying metadata.
func NewBlockWithMeta(style Style, meta BlockMeta, children ...Node) (*Block, error) {
	if len(children) == 0 {
		return nil, &StructuralError{Err: ErrEmptyBlock}
	}
	for i, child := range children {
		if isNil(child) {
			return nil, &StructuralError{Path: fmt.Sprintf("children[%d]", i), Err: ErrNilNode}
		}
	}
	meta.MarkDefs = append([]MarkDef(nil), meta.MarkDefs...)
	return &Block{
		style:    style,
		children: append([]Node(nil), children...),
		meta:     meta,
	}, nil
}

// MustBlock is like NewBlock but panics on error.
// It is intended for literals whose shape is known to be valid.
func MustBlock(style Style, children ...Node) *Block {
	b, err := NewBlock(style, children...)
	if err != nil {
		panic(err)
	}
	return b
}

// Style returns the block style.
func (b *Block) Style() Style { return b.style }

// Children returns a copy of the block's children.
func (b *Block) Children() []Node { return append([]Node(nil), b.children...) }

// Key returns the block's stable identity key, if any.
func (b *Block) Key() string { return b.meta.Key }

// MarkDefs returns a copy of the block's mark definitions.
func (b *Block) MarkDefs() []MarkDef { return append([]MarkDef(nil), b.meta.MarkDefs...) }

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Text:
		return v == nil
	case *Block:
		return v == nil
	}
	return false
}
