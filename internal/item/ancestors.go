package item

// Node is one item in an ancestor tree. Larger holds the items it covers, each
// with its own larger items. A goal reached along several paths is one shared
// Node.
type Node struct {
	Item   *Item
	Larger []*Node
}

// Chain flattens the tree below n in pre-order, excluding n itself. Each item
// appears once, at its first position. For edges 2→1 and 3→2 the chain of 3 is
// [2, 1].
func (n *Node) Chain() []*Item {
	if n == nil {
		return nil
	}

	var out []*Item

	seen := map[string]bool{n.Item.ID: true}

	stack := make([]*Node, 0, len(n.Larger))
	for i := len(n.Larger) - 1; i >= 0; i-- {
		stack = append(stack, n.Larger[i])
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[top.Item.ID] {
			continue
		}

		seen[top.Item.ID] = true
		out = append(out, top.Item)

		for i := len(top.Larger) - 1; i >= 0; i-- {
			stack = append(stack, top.Larger[i])
		}
	}

	return out
}

// IsRoot reports whether the node's item serves nothing larger.
func (n *Node) IsRoot() bool {
	return len(n.Larger) == 0
}

type ancestorFrame struct {
	node    *Node
	parents []*Item
	next    int
}

// Ancestors builds the tree of items that id transitively serves by following
// covering edges from smaller to parent.
//
// The walk is iterative and tracks the ids on the current path. Reaching an id
// that is already on the path stops the walk and returns the tree built so far
// together with a [*CycleError]. Reaching the same goal along two different
// paths is not a cycle: the goal's node is built once and shared, so the walk
// visits each item and edge at most once.
func Ancestors(idx *Index, id string) (*Node, error) {
	it, err := idx.reg.Lookup(id)
	if err != nil {
		return nil, err
	}

	root := &Node{Item: it}
	stack := []*ancestorFrame{{node: root, parents: idx.Parents(id)}}
	onPath := map[string]bool{id: true}
	built := map[string]*Node{id: root}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.next == len(top.parents) {
			delete(onPath, top.node.Item.ID)
			stack = stack[:len(stack)-1]

			continue
		}

		parent := top.parents[top.next]
		top.next++

		if onPath[parent.ID] {
			path := make([]string, 0, len(stack)+1)
			for _, f := range stack {
				path = append(path, f.node.Item.ID)
			}

			path = append(path, parent.ID)

			return root, &CycleError{Path: path}
		}

		if done, ok := built[parent.ID]; ok {
			top.node.Larger = append(top.node.Larger, done)

			continue
		}

		child := &Node{Item: parent}
		top.node.Larger = append(top.node.Larger, child)
		built[parent.ID] = child
		onPath[parent.ID] = true
		stack = append(stack, &ancestorFrame{node: child, parents: idx.Parents(parent.ID)})
	}

	return root, nil
}
