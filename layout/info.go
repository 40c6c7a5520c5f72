package layout

import (
	"math"

	"github.com/glide-wm/glide/tree"
)

type nodeInfo struct {
	size              float64
	total             float64
	kind              ContainerKind
	lastUngroupedKind ContainerKind
	isFullscreen      bool
}

// Info is the per-node secondary index of proportional sizing and
// container-kind state. It is maintained purely by listening to tree
// events — it never scans the tree — grounded on the event-driven index
// described in spec.md §4.1/§9.
type Info struct {
	m map[tree.NodeID]*nodeInfo
}

// NewInfo attaches a fresh Info index to t, registering it as a listener.
func NewInfo(t *tree.Tree) *Info {
	ix := &Info{m: make(map[tree.NodeID]*nodeInfo)}
	t.OnEvent(ix.handleEvent)
	return ix
}

func (ix *Info) handleEvent(t *tree.Tree, e tree.Event) {
	switch e.Kind {
	case tree.AddedToForest:
		ix.m[e.Node] = &nodeInfo{}
	case tree.AddedToParent:
		parent := t.Parent(e.Node)
		ix.m[e.Node].size = 1.0
		ix.m[parent].total += 1.0
	case tree.Copied:
		dup := *ix.m[e.Src]
		ix.m[e.Dest] = &dup
	case tree.RemovingFromParent:
		parent := t.Parent(e.Node)
		ix.m[parent].total -= ix.m[e.Node].size
	case tree.RemovedFromForest:
		delete(ix.m, e.Node)
	}
}

// SetKind sets a node's container kind, updating last-ungrouped-kind
// whenever the new kind is not a group kind.
func (ix *Info) SetKind(node tree.NodeID, kind ContainerKind) {
	info := ix.m[node]
	info.kind = kind
	if !kind.IsGroup() {
		info.lastUngroupedKind = kind
	}
}

// Kind returns a node's current container kind.
func (ix *Info) Kind(node tree.NodeID) ContainerKind { return ix.m[node].kind }

// LastUngroupedKind returns the kind Ungroup would restore.
func (ix *Info) LastUngroupedKind(node tree.NodeID) ContainerKind {
	return ix.m[node].lastUngroupedKind
}

// Size returns a node's proportional share of its parent.
func (ix *Info) Size(node tree.NodeID) float64 { return ix.m[node].size }

// Total returns the sum of a container's direct children's sizes.
func (ix *Info) Total(node tree.NodeID) float64 { return ix.m[node].total }

// Proportion returns size/parent.total, or false for a root.
func (ix *Info) Proportion(t *tree.Tree, node tree.NodeID) (float64, bool) {
	parent := t.Parent(node)
	if parent.IsNil() {
		return 0, false
	}
	return ix.m[node].size / ix.m[parent].total, true
}

// SetSizeAdjustingTotal replaces a node's size, adjusting its parent's
// cached total by the delta so the Σ(child.size) == total invariant holds.
// Used whenever a node's size needs to be something other than the
// AddedToParent default of 1 (rescaling, relocation, nesting).
func (ix *Info) SetSizeAdjustingTotal(t *tree.Tree, node tree.NodeID, newSize float64) {
	parent := t.Parent(node)
	info := ix.m[node]
	delta := newSize - info.size
	info.size = newSize
	if !parent.IsNil() {
		ix.m[parent].total += delta
	}
}

// TakeShare transfers `share` of size from `from` to `node`; both must
// share a parent. The transfer is clamped so neither side's size goes
// negative.
func (ix *Info) TakeShare(t *tree.Tree, node, from tree.NodeID, share float64) {
	share = math.Min(share, ix.m[from].size)
	share = math.Max(share, -ix.m[node].size)
	ix.m[from].size -= share
	ix.m[node].size += share
}

// SetFullscreen sets a node's fullscreen flag.
func (ix *Info) SetFullscreen(node tree.NodeID, v bool) { ix.m[node].isFullscreen = v }

// ToggleFullscreen flips a node's fullscreen flag and returns the new
// value.
func (ix *Info) ToggleFullscreen(node tree.NodeID) bool {
	info := ix.m[node]
	info.isFullscreen = !info.isFullscreen
	return info.isFullscreen
}

// IsFullscreen reports a node's fullscreen flag.
func (ix *Info) IsFullscreen(node tree.NodeID) bool { return ix.m[node].isFullscreen }
