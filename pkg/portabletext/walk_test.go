package portabletext

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trace records walk events as "+label" on enter and "-label" on leave.
func trace(doc Document, status func(Node) WalkStatus) ([]string, error) {
	var events []string
	err := Walk(doc, func(n Node, entering bool) (WalkStatus, error) {
		sign := "-"
		if entering {
			sign = "+"
		}
		switch node := n.(type) {
		case *Text:
			events = append(events, sign+node.Text())
		case *Block:
			events = append(events, sign+node.Style().String())
		}
		if entering && status != nil {
			return status(n), nil
		}
		return WalkContinue, nil
	})
	return events, err
}

func TestWalk_Order(t *testing.T) {
	doc := Document{
		MustBlock(StyleH1, NewText("a"), MustBlock(StyleNormal, NewText("b"))),
		NewText("c"),
	}

	events, err := trace(doc, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"+h1", "+a", "-a", "+normal", "+b", "-b", "-normal", "-h1",
		"+c", "-c",
	}, events)
}

func TestWalk_SkipChildrenStillLeaves(t *testing.T) {
	doc := Document{
		MustBlock(StyleBlockquote, NewText("hidden")),
		MustBlock(StyleNormal, NewText("shown")),
	}

	events, err := trace(doc, func(n Node) WalkStatus {
		if b, ok := n.(*Block); ok && b.Style() == StyleBlockquote {
			return WalkSkipChildren
		}
		return WalkContinue
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"+blockquote", "-blockquote", "+normal", "+shown", "-shown", "-normal"}, events)
}

func TestWalk_Stop(t *testing.T) {
	doc := Document{
		MustBlock(StyleH1, NewText("a"), NewText("stop"), NewText("never")),
		NewText("never"),
	}

	events, err := trace(doc, func(n Node) WalkStatus {
		if txt, ok := n.(*Text); ok && txt.Text() == "stop" {
			return WalkStop
		}
		return WalkContinue
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"+h1", "+a", "-a", "+stop"}, events)
}

func TestWalk_ErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0

	err := Walk(Document{NewText("a"), NewText("b")}, func(Node, bool) (WalkStatus, error) {
		calls++
		return WalkContinue, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWalk_DeepTreeBalanced(t *testing.T) {
	const depth = 10000

	var node Node = NewText("leaf")
	for i := 0; i < depth; i++ {
		node = MustBlock(Styles()[i%len(Styles())], node)
	}

	open := 0
	maxOpen := 0
	err := Walk(Document{node}, func(n Node, entering bool) (WalkStatus, error) {
		if _, ok := n.(*Block); !ok {
			return WalkContinue, nil
		}
		if entering {
			open++
			if open > maxOpen {
				maxOpen = open
			}
		} else {
			open--
		}
		if open < 0 {
			return WalkStop, fmt.Errorf("unbalanced leave")
		}
		return WalkContinue, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 0, open)
	assert.Equal(t, depth, maxOpen)
}

func TestWalk_SkipsNilNodes(t *testing.T) {
	var visited []Node
	err := Walk(Document{(*Block)(nil), NewText("a"), nil}, func(n Node, entering bool) (WalkStatus, error) {
		if entering {
			visited = append(visited, n)
		}
		return WalkContinue, nil
	})

	require.NoError(t, err)
	require.Len(t, visited, 1)
	assert.Equal(t, NewText("a"), visited[0])
}
