package layout

import "github.com/glide-wm/glide/tree"

// Selection records, for each container in a forest, the child last
// selected under it. The overall selection path for a layout is the chain
// from its root following each container's remembered child down to a
// leaf or an empty container.
type Selection struct {
	m map[tree.NodeID]tree.NodeID
}

// NewSelection attaches a fresh Selection index to t.
func NewSelection(t *tree.Tree) *Selection {
	s := &Selection{m: make(map[tree.NodeID]tree.NodeID)}
	t.OnEvent(func(_ *tree.Tree, e tree.Event) {
		if e.Kind == tree.RemovedFromForest {
			delete(s.m, e.Node)
		}
	})
	return s
}

// Get returns the remembered child of node, if any.
func (s *Selection) Get(node tree.NodeID) (tree.NodeID, bool) {
	c, ok := s.m[node]
	return c, ok
}

// Select marks node as selected: for every ancestor container, its
// remembered child becomes the node on the chain between it and node.
func (s *Selection) Select(t *tree.Tree, node tree.NodeID) {
	child := node
	for parent := t.Parent(child); !parent.IsNil(); parent = t.Parent(child) {
		s.m[parent] = child
		child = parent
	}
}

// SelectedChild returns the child of node that the selection path passes
// through, falling back to the first child when nothing is remembered or
// the remembered child is no longer node's child (for example, it was
// removed without an intervening Select call).
func (s *Selection) SelectedChild(t *tree.Tree, node tree.NodeID) tree.NodeID {
	if c, ok := s.m[node]; ok && t.Valid(c) && t.Parent(c) == node {
		return c
	}
	return t.FirstChild(node)
}
