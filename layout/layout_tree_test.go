package layout_test

import (
	"testing"

	"github.com/glide-wm/glide/layout"
	"github.com/glide-wm/glide/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWindowAndRoundTripLookup(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	node := lt.AddWindowUnder(l.Root(), wid(1, 1))

	got, ok := lt.Windows.WindowFor(node)
	require.True(t, ok)
	assert.Equal(t, wid(1, 1), got)

	back, ok := lt.Windows.NodeFor(wid(1, 1))
	require.True(t, ok)
	assert.Equal(t, node, back)
}

func TestMoveNodeSwapsSiblingsWithinOrientation(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()
	a := lt.AddWindowUnder(root, wid(1, 1))
	lt.AddWindowUnder(root, wid(1, 2))
	c := lt.AddWindowUnder(root, wid(1, 3))

	moved := lt.MoveNode(c, tree.Left)
	require.True(t, moved)

	children := lt.Nodes.Children(root)
	require.Len(t, children, 3)
	assert.Equal(t, a, children[0])
	assert.Equal(t, c, children[1])
}

func TestMoveNodeAscendsWhenNoAdjacentSiblingInOrientation(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()
	vertical := lt.AddContainer(root, layout.KindVertical)
	leaf := lt.AddWindowUnder(vertical, wid(1, 1))
	lt.AddWindowUnder(root, wid(1, 2))

	moved := lt.MoveNode(leaf, tree.Right)
	assert.True(t, moved)
	assert.Equal(t, 2, lt.Nodes.ChildCount(root))
}

func TestThreeWindowMoveUpScenario(t *testing.T) {
	// root (vertical): [top, col (horizontal): [a, b]]
	// Moving b up finds no vertical sibling inside the horizontal col, so
	// the move ascends and repositions col itself ahead of top.
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()
	lt.SetContainerKind(root, layout.KindVertical)
	top := lt.AddWindowUnder(root, wid(1, 1))
	col := lt.AddContainer(root, layout.KindHorizontal)
	a := lt.AddWindowUnder(col, wid(1, 2))
	b := lt.AddWindowUnder(col, wid(1, 3))

	moved := lt.MoveNode(b, tree.Up)
	require.True(t, moved)

	rootChildren := lt.Nodes.Children(root)
	require.Len(t, rootChildren, 2)
	assert.Equal(t, col, rootChildren[0])
	assert.Equal(t, top, rootChildren[1])

	colChildren := lt.Nodes.Children(col)
	require.Len(t, colChildren, 2)
	assert.Equal(t, a, colChildren[0])
	assert.Equal(t, b, colChildren[1])
}

func TestRemoveWindowCleansEmptyAncestorsButKeepsRoot(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()
	container := lt.AddContainer(root, layout.KindVertical)
	lt.AddWindowUnder(container, wid(1, 1))

	ok := lt.RemoveWindow(wid(1, 1))
	require.True(t, ok)
	assert.Equal(t, 0, lt.Nodes.ChildCount(root))
	assert.True(t, lt.Nodes.Valid(root))
	assert.False(t, lt.Nodes.Valid(container))
}

func TestNestInContainerPreservesSizeAndSelection(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()
	a := lt.AddWindowUnder(root, wid(1, 1))
	lt.AddWindowUnder(root, wid(1, 2))
	lt.Resize(a, 0.25, tree.Right)

	sizeBefore := lt.Info.Size(a)
	container := lt.NestInContainer(a, layout.KindTabbed)

	assert.InDelta(t, sizeBefore, lt.Info.Size(container), 1e-9)
	assert.Equal(t, container, lt.Nodes.Parent(a))
	assert.Equal(t, a, lt.Selection.SelectedChild(lt.Nodes, container))
}

func TestToggleFullscreenIsInvolution(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	node := lt.AddWindowUnder(l.Root(), wid(1, 1))

	assert.False(t, lt.IsFullscreen(node))
	lt.ToggleFullscreen(node)
	assert.True(t, lt.IsFullscreen(node))
	lt.ToggleFullscreen(node)
	assert.False(t, lt.IsFullscreen(node))
}

func TestTraverseRoundTrip(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()
	a := lt.AddWindowUnder(root, wid(1, 1))
	b := lt.AddWindowUnder(root, wid(1, 2))

	next, ok := lt.Traverse(a, tree.Right)
	require.True(t, ok)
	assert.Equal(t, b, next)

	back, ok := lt.Traverse(next, tree.Left)
	require.True(t, ok)
	assert.Equal(t, a, back)
}

func TestCloneLayoutIsStructurallyIdenticalAndIndependent(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()
	lt.AddWindowUnder(root, wid(1, 1))
	lt.AddWindowUnder(root, wid(1, 2))

	clone := lt.CloneLayout(l, "scaled")
	assert.NotEqual(t, l, clone)
	assert.Equal(t, lt.Nodes.ChildCount(root), lt.Nodes.ChildCount(clone.Root()))

	lt.AddWindowUnder(root, wid(1, 3))
	assert.NotEqual(t, lt.Nodes.ChildCount(root), lt.Nodes.ChildCount(clone.Root()))
}

func TestResizeTakesShareFromAdjacentSibling(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()
	a := lt.AddWindowUnder(root, wid(1, 1))
	b := lt.AddWindowUnder(root, wid(1, 2))

	totalBefore := lt.Info.Total(root)
	ok := lt.Resize(a, 0.1, tree.Right)
	require.True(t, ok)
	assert.InDelta(t, totalBefore, lt.Info.Total(root), 1e-9)
	assert.Greater(t, lt.Info.Size(a), lt.Info.Size(b))
}
