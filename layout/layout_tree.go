package layout

import (
	"github.com/glide-wm/glide/geom"
	"github.com/glide-wm/glide/tree"
)

// Tree is the high-level, multi-layout forest: a tree.Tree plus its three
// auxiliary indexes (Info, Selection, Windows), and the operations spec.md
// §4.1 names (create layout, add window, nest, move, remove, resize, set
// kind, toggle fullscreen). Multiple layouts share one arena but never
// share nodes.
type Tree struct {
	Nodes     *tree.Tree
	Info      *Info
	Selection *Selection
	Windows   *WindowIndex

	labels map[tree.LayoutID]string
	focus  map[tree.LayoutID]tree.NodeID
}

// NewTree returns an empty multi-layout forest.
func NewTree() *Tree {
	t := tree.New()
	return &Tree{
		Nodes:     t,
		Info:      NewInfo(t),
		Selection: NewSelection(t),
		Windows:   NewWindowIndex(t),
		labels:    make(map[tree.LayoutID]string),
		focus:     make(map[tree.LayoutID]tree.NodeID),
	}
}

// CreateLayout allocates an empty container root, defaulting to
// Horizontal, and returns its id. The root is never removed except by
// RemoveLayout.
func (lt *Tree) CreateLayout(label string) tree.LayoutID {
	root := lt.Nodes.NewRoot()
	lt.Info.SetKind(root, KindHorizontal)
	id := tree.NewLayoutID(root)
	lt.labels[id] = label
	return id
}

// Label returns a layout's display label.
func (lt *Tree) Label(id tree.LayoutID) string { return lt.labels[id] }

// SetLabel renames a layout.
func (lt *Tree) SetLabel(id tree.LayoutID, label string) { lt.labels[id] = label }

// RemoveLayout frees every node of the layout's subtree.
func (lt *Tree) RemoveLayout(id tree.LayoutID) {
	lt.Nodes.Remove(id.Root())
	delete(lt.labels, id)
	delete(lt.focus, id)
}

// CloneLayout creates a structurally and proportionally identical copy of
// a layout under a new id. Because rectangles are derived as
// size/total ratios against whatever screen rect is supplied at render
// time, a clone renders identically to its source at the same screen size
// and scales automatically at a different one — this is how
// SpaceLayoutMapping creates scaled variants without any arithmetic on
// stored sizes.
func (lt *Tree) CloneLayout(id tree.LayoutID, label string) tree.LayoutID {
	newRoot := lt.Nodes.Copy(id.Root())
	newID := tree.NewLayoutID(newRoot)
	lt.labels[newID] = label
	return newID
}

// AddWindowUnder creates a leaf carrying wid and appends it under parent.
func (lt *Tree) AddWindowUnder(parent tree.NodeID, wid tree.WindowID) tree.NodeID {
	node := lt.Nodes.AppendChild(parent)
	lt.Windows.Assign(node, wid)
	return node
}

// AddWindowAfter creates a leaf carrying wid, inserted immediately after
// sibling. A layout root has no siblings, so when sibling is a root (as
// EffectiveFocus returns for an empty layout) the leaf is appended under it.
func (lt *Tree) AddWindowAfter(sibling tree.NodeID, wid tree.WindowID) tree.NodeID {
	if lt.Nodes.IsRoot(sibling) {
		return lt.AddWindowUnder(sibling, wid)
	}
	node := lt.Nodes.InsertAfter(sibling)
	lt.Windows.Assign(node, wid)
	return node
}

// AddContainer creates an empty interior node under parent.
func (lt *Tree) AddContainer(parent tree.NodeID, kind ContainerKind) tree.NodeID {
	node := lt.Nodes.AppendChild(parent)
	lt.Info.SetKind(node, kind)
	return node
}

// relocate detaches node (with its subtree) and reattaches it under
// newParent immediately after `after`, preserving its proportional size
// across the detach/reattach cycle (which would otherwise reset it to the
// AddedToParent default of 1).
func (lt *Tree) relocate(node, newParent, after tree.NodeID) {
	size := lt.Info.Size(node)
	lt.Nodes.Detach(node)
	lt.Nodes.Reattach(node, newParent, after)
	lt.Info.SetSizeAdjustingTotal(lt.Nodes, node, size)
}

// NestInContainer wraps node in a new container of the given kind: the
// container takes node's former sibling position and proportional size,
// and node becomes its sole child. Selection follows node.
func (lt *Tree) NestInContainer(node tree.NodeID, kind ContainerKind) tree.NodeID {
	originalSize := lt.Info.Size(node)
	container := lt.Nodes.InsertAfter(node)
	lt.relocate(node, container, tree.NodeID{})
	lt.Info.SetKind(container, kind)
	lt.Info.SetSizeAdjustingTotal(lt.Nodes, container, originalSize)
	lt.Selection.Select(lt.Nodes, node)
	return container
}

// removeCleaningAncestors removes node, then removes any ancestor
// container left with no children, stopping at the layout's root (which
// is never removed by this path).
func (lt *Tree) removeCleaningAncestors(node tree.NodeID) {
	parent := lt.Nodes.Parent(node)
	lt.Nodes.Remove(node)
	for !parent.IsNil() && !lt.Nodes.IsRoot(parent) && lt.Nodes.ChildCount(parent) == 0 {
		grandparent := lt.Nodes.Parent(parent)
		lt.Nodes.Remove(parent)
		parent = grandparent
	}
}

// RemoveWindow removes wid's leaf, if present, cleaning up emptied
// ancestor containers. Reports whether a leaf was found.
func (lt *Tree) RemoveWindow(wid tree.WindowID) bool {
	node, ok := lt.Windows.NodeFor(wid)
	if !ok {
		return false
	}
	lt.removeCleaningAncestors(node)
	return true
}

// RemoveWindowsForApp removes every leaf belonging to pid.
func (lt *Tree) RemoveWindowsForApp(pid int32) {
	var toRemove []tree.NodeID
	for _, wid := range lt.Windows.Windows() {
		if wid.PID == pid {
			if node, ok := lt.Windows.NodeFor(wid); ok {
				toRemove = append(toRemove, node)
			}
		}
	}
	for _, n := range toRemove {
		lt.removeCleaningAncestors(n)
	}
}

// RetainApps removes every leaf whose pid does not satisfy keep.
func (lt *Tree) RetainApps(keep func(pid int32) bool) {
	var toRemove []tree.NodeID
	for _, wid := range lt.Windows.Windows() {
		if !keep(wid.PID) {
			if node, ok := lt.Windows.NodeFor(wid); ok {
				toRemove = append(toRemove, node)
			}
		}
	}
	for _, n := range toRemove {
		lt.removeCleaningAncestors(n)
	}
}

// SetWindowsForApp reconciles pid's leaves under layout against windows:
// existing leaves for pid not present in windows are removed, and any
// window in windows without an existing leaf is appended under the
// layout's root.
func (lt *Tree) SetWindowsForApp(layout tree.LayoutID, pid int32, windows []tree.WindowID) {
	want := make(map[tree.WindowID]bool, len(windows))
	for _, w := range windows {
		want[w] = true
	}
	var toRemove []tree.NodeID
	lt.Nodes.WalkPreorder(layout.Root(), func(n tree.NodeID) {
		if wid, ok := lt.Windows.WindowFor(n); ok && wid.PID == pid && !want[wid] {
			toRemove = append(toRemove, n)
		}
	})
	for _, n := range toRemove {
		lt.removeCleaningAncestors(n)
	}
	for _, w := range windows {
		if _, ok := lt.Windows.NodeFor(w); !ok {
			lt.AddWindowUnder(layout.Root(), w)
		}
	}
}

func (lt *Tree) adjacentSibling(node tree.NodeID, dir tree.Direction) (parent, sibling tree.NodeID, ok bool) {
	parent = lt.Nodes.Parent(node)
	if parent.IsNil() {
		return parent, tree.NodeID{}, false
	}
	if lt.Info.Kind(parent).Orientation() != dir.Orientation() {
		return parent, tree.NodeID{}, false
	}
	if dir.Forward() {
		sibling = lt.Nodes.NextSibling(node)
	} else {
		sibling = lt.Nodes.PrevSibling(node)
	}
	return parent, sibling, !sibling.IsNil()
}

// MoveNode moves node within its parent if an adjacent sibling exists
// along dir's orientation; otherwise ascends and retries. Returns false if
// no move is possible anywhere within the layout.
func (lt *Tree) MoveNode(node tree.NodeID, dir tree.Direction) bool {
	cur := node
	for {
		parent := lt.Nodes.Parent(cur)
		if parent.IsNil() {
			return false
		}
		if lt.Info.Kind(parent).Orientation() == dir.Orientation() {
			var sibling tree.NodeID
			if dir.Forward() {
				sibling = lt.Nodes.NextSibling(cur)
			} else {
				sibling = lt.Nodes.PrevSibling(cur)
			}
			if !sibling.IsNil() {
				lt.swapSiblings(cur, sibling, dir.Forward())
				return true
			}
		}
		cur = parent
	}
}

// swapSiblings repositions cur to the other side of target: after target
// when moving forward, before it otherwise.
func (lt *Tree) swapSiblings(cur, target tree.NodeID, forward bool) {
	parent := lt.Nodes.Parent(cur)
	var after tree.NodeID
	if forward {
		after = target
	} else {
		after = lt.Nodes.PrevSibling(target)
	}
	lt.relocate(cur, parent, after)
}

// MoveNodeAfter removes node and reinserts it immediately after target
// (which may be under a different parent), preserving its subtree and
// size.
func (lt *Tree) MoveNodeAfter(target, node tree.NodeID) {
	parent := lt.Nodes.Parent(target)
	lt.relocate(node, parent, target)
}

// selectionLeaf descends from node via the selection path until it
// reaches a leaf (or an empty container).
func (lt *Tree) selectionLeaf(node tree.NodeID) tree.NodeID {
	for !lt.Nodes.IsLeaf(node) {
		child := lt.Selection.SelectedChild(lt.Nodes, node)
		if child.IsNil() {
			return node
		}
		node = child
	}
	return node
}

// Traverse returns the next leaf-or-container along dir: it ascends until
// it finds an ancestor oriented along dir with an unvisited sibling in
// that direction, then descends into that sibling's selection path. It
// returns false at a layout boundary.
func (lt *Tree) Traverse(node tree.NodeID, dir tree.Direction) (tree.NodeID, bool) {
	cur := node
	for {
		parent := lt.Nodes.Parent(cur)
		if parent.IsNil() {
			return tree.NodeID{}, false
		}
		if lt.Info.Kind(parent).Orientation() == dir.Orientation() {
			var sibling tree.NodeID
			if dir.Forward() {
				sibling = lt.Nodes.NextSibling(cur)
			} else {
				sibling = lt.Nodes.PrevSibling(cur)
			}
			if !sibling.IsNil() {
				return lt.selectionLeaf(sibling), true
			}
		}
		cur = parent
	}
}

// TraverseScrollWrapping behaves like Traverse, but for a horizontal
// direction that hits a layout boundary it wraps to the first or last
// column of layout's root instead of returning false. Callers must only
// use this when the layout is scroll-kind and the scroll gate is enabled.
func (lt *Tree) TraverseScrollWrapping(layout tree.LayoutID, node tree.NodeID, dir tree.Direction) (tree.NodeID, bool) {
	if n, ok := lt.Traverse(node, dir); ok {
		return n, true
	}
	if dir.Orientation() != tree.Horizontal {
		return tree.NodeID{}, false
	}
	cols := lt.Nodes.Children(layout.Root())
	if len(cols) == 0 {
		return tree.NodeID{}, false
	}
	var wrapped tree.NodeID
	if dir.Forward() {
		wrapped = cols[0]
	} else {
		wrapped = cols[len(cols)-1]
	}
	return lt.selectionLeaf(wrapped), true
}

// Select updates the selection path so that every ancestor of node
// remembers the chain down to it.
func (lt *Tree) Select(node tree.NodeID) {
	lt.Selection.Select(lt.Nodes, node)
}

// EffectiveFocus returns the layout's currently focused node: either the
// node last reached by AscendSelection/DescendSelection, or (by default)
// the leaf at the end of the root's selection path.
func (lt *Tree) EffectiveFocus(layout tree.LayoutID) tree.NodeID {
	if n, ok := lt.focus[layout]; ok && lt.Nodes.Valid(n) {
		return n
	}
	return lt.selectionLeaf(layout.Root())
}

// AscendSelection moves the layout's effective focus up one level, toward
// the root.
func (lt *Tree) AscendSelection(layout tree.LayoutID) {
	cur := lt.EffectiveFocus(layout)
	if p := lt.Nodes.Parent(cur); !p.IsNil() {
		lt.focus[layout] = p
	}
}

// DescendSelection moves the layout's effective focus one step toward a
// leaf, following the selection path. Once it reaches a leaf, the focus
// override is cleared so the focus tracks future selection changes.
func (lt *Tree) DescendSelection(layout tree.LayoutID) {
	cur := lt.EffectiveFocus(layout)
	if lt.Nodes.IsLeaf(cur) {
		return
	}
	child := lt.Selection.SelectedChild(lt.Nodes, cur)
	if child.IsNil() {
		return
	}
	if lt.Nodes.IsLeaf(child) {
		delete(lt.focus, layout)
	} else {
		lt.focus[layout] = child
	}
}

// SetContainerKind sets node's container kind.
func (lt *Tree) SetContainerKind(node tree.NodeID, kind ContainerKind) {
	lt.Info.SetKind(node, kind)
}

// ContainerKind returns node's current container kind.
func (lt *Tree) ContainerKind(node tree.NodeID) ContainerKind { return lt.Info.Kind(node) }

// LastUngroupedContainerKind returns the kind Ungroup would restore.
func (lt *Tree) LastUngroupedContainerKind(node tree.NodeID) ContainerKind {
	return lt.Info.LastUngroupedKind(node)
}

// Ungroup restores node's last non-group kind.
func (lt *Tree) Ungroup(node tree.NodeID) {
	lt.Info.SetKind(node, lt.Info.LastUngroupedKind(node))
}

// SetFullscreen sets node's fullscreen flag.
func (lt *Tree) SetFullscreen(node tree.NodeID, v bool) { lt.Info.SetFullscreen(node, v) }

// ToggleFullscreen flips node's fullscreen flag and returns the new value.
func (lt *Tree) ToggleFullscreen(node tree.NodeID) bool { return lt.Info.ToggleFullscreen(node) }

// IsFullscreen reports node's fullscreen flag.
func (lt *Tree) IsFullscreen(node tree.NodeID) bool { return lt.Info.IsFullscreen(node) }

// WindowNode returns the leaf carrying wid, restricted to the given
// layout: a WindowId is assigned to at most one leaf across the whole
// forest, but callers often need to know whether that leaf belongs to a
// specific layout before acting on it.
func (lt *Tree) WindowNode(layout tree.LayoutID, wid tree.WindowID) (tree.NodeID, bool) {
	node, ok := lt.Windows.NodeFor(wid)
	if !ok {
		return tree.NodeID{}, false
	}
	if node == layout.Root() {
		return node, true
	}
	for _, a := range lt.Nodes.Ancestors(node) {
		if a == layout.Root() {
			return node, true
		}
	}
	return tree.NodeID{}, false
}

// WindowAt returns the WindowId carried by node, if it is a window leaf.
func (lt *Tree) WindowAt(node tree.NodeID) (tree.WindowID, bool) {
	return lt.Windows.WindowFor(node)
}

// VisibleWindowsUnder collects every window leaf under node that is
// actually on screen: a Tabbed/Stacked ancestor hides every child but its
// selected one, so only that branch is descended.
func (lt *Tree) VisibleWindowsUnder(node tree.NodeID) []tree.WindowID {
	var out []tree.WindowID
	var walk func(n tree.NodeID)
	walk = func(n tree.NodeID) {
		if wid, ok := lt.Windows.WindowFor(n); ok {
			out = append(out, wid)
			return
		}
		if lt.Info.Kind(n).IsGroup() {
			if sel := lt.Selection.SelectedChild(lt.Nodes, n); !sel.IsNil() {
				walk(sel)
			}
			return
		}
		for _, c := range lt.Nodes.Children(n) {
			walk(c)
		}
	}
	walk(node)
	return out
}

// SelectReturningSurfacedWindows updates the selection path to node and
// returns every window that was hidden behind a Tabbed/Stacked sibling
// branch and has just become visible as a result, so the host can raise
// them (the window server does not restack windows on its own when a
// group's visible child changes).
func (lt *Tree) SelectReturningSurfacedWindows(node tree.NodeID) []tree.WindowID {
	chain := lt.Nodes.Ancestors(node)
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	chain = append(chain, node)

	var surfaced []tree.WindowID
	for i := 0; i < len(chain)-1; i++ {
		parent, child := chain[i], chain[i+1]
		if !lt.Info.Kind(parent).IsGroup() {
			continue
		}
		if lt.Selection.SelectedChild(lt.Nodes, parent) == child {
			continue
		}
		surfaced = append(surfaced, lt.VisibleWindowsUnder(child)...)
	}
	lt.Select(node)
	return surfaced
}

// Columns returns a scroll-kind layout's top-level columns: the direct
// children of its root.
func (lt *Tree) Columns(layout tree.LayoutID) []tree.NodeID {
	return lt.Nodes.Children(layout.Root())
}

// ColumnOf returns the top-level column containing node (node itself, if
// node is already a direct child of layout's root).
func (lt *Tree) ColumnOf(layout tree.LayoutID, node tree.NodeID) (tree.NodeID, bool) {
	if node.IsNil() || node == layout.Root() {
		return tree.NodeID{}, false
	}
	cur := node
	for {
		parent := lt.Nodes.Parent(cur)
		if parent.IsNil() {
			return tree.NodeID{}, false
		}
		if parent == layout.Root() {
			return cur, true
		}
		cur = parent
	}
}

// SwapWindows exchanges the WindowIds carried by two leaves, without
// moving either leaf's position in the tree: used by interactive
// window-swap dragging, where the dragged window's content moves to the
// drop target's position and vice versa.
func (lt *Tree) SwapWindows(a, b tree.NodeID) {
	wi := lt.Windows
	widA, okA := wi.WindowFor(a)
	widB, okB := wi.WindowFor(b)
	delete(wi.windowByNode, a)
	delete(wi.windowByNode, b)
	if okA {
		delete(wi.nodeByWindow, widA)
	}
	if okB {
		delete(wi.nodeByWindow, widB)
	}
	if okA {
		wi.Assign(b, widA)
	}
	if okB {
		wi.Assign(a, widB)
	}
}

// AddWindowToScrollColumn inserts wid into layout: newColumn creates a
// fresh column after the currently selected one and places wid there;
// otherwise wid is appended to the end of the currently selected column
// (or becomes a new sole column if the layout is still empty).
func (lt *Tree) AddWindowToScrollColumn(layout tree.LayoutID, wid tree.WindowID, newColumn bool) tree.NodeID {
	root := layout.Root()
	focus := lt.EffectiveFocus(layout)
	col, ok := lt.ColumnOf(layout, focus)
	if !ok {
		col = lt.Nodes.LastChild(root)
	}

	if !newColumn && !col.IsNil() {
		node := lt.AddWindowUnder(col, wid)
		lt.Select(node)
		return node
	}

	var container tree.NodeID
	if col.IsNil() {
		container = lt.AddContainer(root, KindVertical)
	} else {
		container = lt.Nodes.InsertAfter(col)
		lt.Info.SetKind(container, KindVertical)
	}
	node := lt.AddWindowUnder(container, wid)
	lt.Select(node)
	return node
}

// SetFrameFromResize redistributes node's size against its siblings to
// match an interactively-dragged frame change: the axis whose origin moved
// resizes against the sibling on that side, the axis whose origin held
// steady resizes against the sibling on the far side, each independently
// as a fraction of the screen dimension it was measured against. This
// upholds "only resize in 2 directions at once" without needing to know
// ahead of time which edges the host actually dragged.
func (lt *Tree) SetFrameFromResize(node tree.NodeID, oldFrame, newFrame, screen geom.Rect) {
	if dw := newFrame.Size.W - oldFrame.Size.W; dw != 0 && screen.Size.W != 0 {
		dir := tree.Right
		if newFrame.Origin.X != oldFrame.Origin.X {
			dir = tree.Left
		}
		lt.Resize(node, dw/screen.Size.W, dir)
	}
	if dh := newFrame.Size.H - oldFrame.Size.H; dh != 0 && screen.Size.H != 0 {
		dir := tree.Down
		if newFrame.Origin.Y != oldFrame.Origin.Y {
			dir = tree.Up
		}
		lt.Resize(node, dh/screen.Size.H, dir)
	}
}

// Proportion returns node's share of its parent's total, or false if node
// is a layout root (no parent to be proportional to).
func (lt *Tree) Proportion(node tree.NodeID) (float64, bool) {
	return lt.Info.Proportion(lt.Nodes, node)
}

// Resize redistributes size between node and its adjacent sibling along
// dir's orientation: ratio is the fraction of the parent's total to move
// from the sibling to node (negative moves the other way). Returns false
// if there is no such sibling.
func (lt *Tree) Resize(node tree.NodeID, ratio float64, dir tree.Direction) bool {
	parent, sibling, ok := lt.adjacentSibling(node, dir)
	if !ok {
		return false
	}
	total := lt.Info.Total(parent)
	lt.Info.TakeShare(lt.Nodes, node, sibling, ratio*total)
	return true
}
