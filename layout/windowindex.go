package layout

import "github.com/glide-wm/glide/tree"

// WindowIndex is the secondary map between leaf nodes and the WindowIds
// they carry. A WindowId appears in at most one leaf across the entire
// forest.
type WindowIndex struct {
	nodeByWindow map[tree.WindowID]tree.NodeID
	windowByNode map[tree.NodeID]tree.WindowID
}

// NewWindowIndex attaches a fresh WindowIndex to t.
func NewWindowIndex(t *tree.Tree) *WindowIndex {
	wi := &WindowIndex{
		nodeByWindow: make(map[tree.WindowID]tree.NodeID),
		windowByNode: make(map[tree.NodeID]tree.WindowID),
	}
	t.OnEvent(func(_ *tree.Tree, e tree.Event) {
		if e.Kind == tree.RemovedFromForest {
			if wid, ok := wi.windowByNode[e.Node]; ok {
				delete(wi.windowByNode, e.Node)
				delete(wi.nodeByWindow, wid)
			}
		}
	})
	return wi
}

// Assign records that node carries wid.
func (wi *WindowIndex) Assign(node tree.NodeID, wid tree.WindowID) {
	wi.nodeByWindow[wid] = node
	wi.windowByNode[node] = wid
}

// NodeFor returns the leaf carrying wid, if any.
func (wi *WindowIndex) NodeFor(wid tree.WindowID) (tree.NodeID, bool) {
	n, ok := wi.nodeByWindow[wid]
	return n, ok
}

// WindowFor returns the WindowId node carries, if any.
func (wi *WindowIndex) WindowFor(node tree.NodeID) (tree.WindowID, bool) {
	w, ok := wi.windowByNode[node]
	return w, ok
}

// Remove forgets wid's assignment without touching the tree.
func (wi *WindowIndex) Remove(wid tree.WindowID) {
	if node, ok := wi.nodeByWindow[wid]; ok {
		delete(wi.nodeByWindow, wid)
		delete(wi.windowByNode, node)
	}
}

// Windows returns every currently-assigned WindowId, in no particular
// order.
func (wi *WindowIndex) Windows() []tree.WindowID {
	out := make([]tree.WindowID, 0, len(wi.nodeByWindow))
	for w := range wi.nodeByWindow {
		out = append(out, w)
	}
	return out
}
