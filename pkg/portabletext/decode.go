package portabletext

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	typeBlock = "block"
	typeSpan  = "span"
)

// wireNode is the JSON shape of both blocks and spans. The whole payload is
// parsed into this tree in one pass; encoding/json bounds its nesting.
type wireNode struct {
	Type     string            `json:"_type"`
	Key      string            `json:"_key,omitempty"`
	Style    *string           `json:"style,omitempty"`
	Text     string            `json:"text,omitempty"`
	Marks    []string          `json:"marks,omitempty"`
	MarkDefs []json.RawMessage `json:"markDefs,omitempty"`
	Children []wireNode        `json:"children,omitempty"`
}

// Decode reads a JSON array of Portable Text nodes.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeString is Decode for an in-memory string.
func DecodeString(s string) (Document, error) {
	return Decode(strings.NewReader(s))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	var wires []wireNode
	if err := json.Unmarshal(data, &wires); err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	doc := make(Document, 0, len(wires))
	for i := range wires {
		n, err := decodeTree(&wires[i], i)
		if err != nil {
			return err
		}
		doc = append(doc, n)
	}
	*d = doc
	return nil
}

// decodeFrame tracks one partially built node.
type decodeFrame struct {
	wire  *wireNode
	style Style
	index int    // position within the parent (or document)
	next  int    // next child to visit
	built []Node // children built so far
}

// decodeTree validates and builds one top-level node. It keeps its own frame
// stack so that deep trees do not grow the call stack.
func decodeTree(wire *wireNode, index int) (Node, error) {
	var stack []*decodeFrame

	root, err := newDecodeFrame(wire, index)
	if err != nil {
		return nil, &StructuralError{Path: fmt.Sprintf("[%d]", index), Err: err}
	}
	stack = append(stack, root)

	for {
		top := stack[len(stack)-1]

		if top.next < len(top.wire.Children) {
			i := top.next
			top.next++
			child, err := newDecodeFrame(&top.wire.Children[i], i)
			if err != nil {
				return nil, &StructuralError{Path: framePath(stack) + fmt.Sprintf(".children[%d]", i), Err: err}
			}
			stack = append(stack, child)
			continue
		}

		n, err := top.build()
		if err != nil {
			return nil, &StructuralError{Path: framePath(stack), Err: err}
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return n, nil
		}
		parent := stack[len(stack)-1]
		parent.built = append(parent.built, n)
	}
}

// newDecodeFrame checks the shape of a single node.
func newDecodeFrame(wire *wireNode, index int) (*decodeFrame, error) {
	frame := &decodeFrame{wire: wire, index: index, style: StyleNormal}

	switch wire.Type {
	case typeSpan:
		if len(wire.Children) > 0 {
			return nil, ErrLeafChildren
		}
	case typeBlock:
		if wire.Style != nil {
			style, err := ParseStyle(*wire.Style)
			if err != nil {
				return nil, err
			}
			frame.style = style
		}
		if len(wire.Children) == 0 {
			return nil, ErrEmptyBlock
		}
		frame.built = make([]Node, 0, len(wire.Children))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, wire.Type)
	}
	return frame, nil
}

// build turns a frame whose children are all built into a node.
func (f *decodeFrame) build() (Node, error) {
	if f.wire.Type == typeSpan {
		return NewText(f.wire.Text, f.wire.Marks...), nil
	}

	meta := BlockMeta{Key: f.wire.Key}
	for _, raw := range f.wire.MarkDefs {
		var head struct {
			Key  string `json:"_key"`
			Type string `json:"_type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return nil, fmt.Errorf("invalid mark definition: %w", err)
		}
		meta.MarkDefs = append(meta.MarkDefs, MarkDef{Key: head.Key, Type: head.Type, Raw: raw})
	}

	return NewBlockWithMeta(f.style, meta, f.built...)
}

// framePath renders the location of the innermost frame, e.g. "[1].children[0]".
func framePath(stack []*decodeFrame) string {
	var sb strings.Builder
	for i, f := range stack {
		if i == 0 {
			fmt.Fprintf(&sb, "[%d]", f.index)
			continue
		}
		fmt.Fprintf(&sb, ".children[%d]", f.index)
	}
	return sb.String()
}

// MarshalJSON implements json.Marshaler. A nil Document encodes as [].
func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Node(d))
}

// MarshalJSON implements json.Marshaler.
func (t *Text) MarshalJSON() ([]byte, error) {
	marks := t.marks
	if marks == nil {
		marks = []string{}
	}
	return json.Marshal(struct {
		Type  string   `json:"_type"`
		Text  string   `json:"text"`
		Marks []string `json:"marks"`
	}{typeSpan, t.text, marks})
}

// MarshalJSON implements json.Marshaler.
func (b *Block) MarshalJSON() ([]byte, error) {
	markDefs := make([]json.RawMessage, 0, len(b.meta.MarkDefs))
	for _, md := range b.meta.MarkDefs {
		if len(md.Raw) > 0 {
			markDefs = append(markDefs, md.Raw)
			continue
		}
		raw, err := json.Marshal(map[string]string{"_key": md.Key, "_type": md.Type})
		if err != nil {
			return nil, err
		}
		markDefs = append(markDefs, raw)
	}

	return json.Marshal(struct {
		Type     string            `json:"_type"`
		Key      string            `json:"_key,omitempty"`
		Style    Style             `json:"style"`
		MarkDefs []json.RawMessage `json:"markDefs"`
		Children []Node            `json:"children"`
	}{typeBlock, b.meta.Key, b.style, markDefs, b.children})
}
