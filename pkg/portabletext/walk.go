package portabletext

// WalkStatus tells Walk how to proceed after a callback.
type WalkStatus int

const (
	// WalkContinue descends into children and continues.
	WalkContinue WalkStatus = iota
	// WalkSkipChildren does not descend into the current node's children.
	// The leave callback for the node is still delivered.
	WalkSkipChildren
	// WalkStop ends the walk immediately.
	WalkStop
)

// WalkFunc is called twice per node: with entering set before its children
// and with entering unset after them.
type WalkFunc func(n Node, entering bool) (WalkStatus, error)

// walkEntry is one pending step of the traversal.
type walkEntry struct {
	node     Node
	entering bool
}

// Walk visits nodes depth-first in document order.
//
// The work list is a slice used as a stack, so nesting depth does not consume
// call stack. Entries are pushed in reverse so they pop in forward order, and a
// node's leave entry is pushed beneath its children so it runs after all of them.
// Nil nodes, including typed nil pointers, are skipped without a callback.
func Walk(nodes []Node, fn WalkFunc) error {
	stack := make([]walkEntry, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		if !isNil(nodes[i]) {
			stack = append(stack, walkEntry{node: nodes[i], entering: true})
		}
	}

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		status, err := fn(entry.node, entry.entering)
		if err != nil {
			return err
		}
		if status == WalkStop {
			return nil
		}
		if !entry.entering {
			continue
		}

		stack = append(stack, walkEntry{node: entry.node, entering: false})

		block, ok := entry.node.(*Block)
		if !ok || status == WalkSkipChildren {
			continue
		}
		for i := len(block.children) - 1; i >= 0; i-- {
			if !isNil(block.children[i]) {
				stack = append(stack, walkEntry{node: block.children[i], entering: true})
			}
		}
	}
	return nil
}
