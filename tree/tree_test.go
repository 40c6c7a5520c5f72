package tree_test

import (
	"testing"

	"github.com/glide-wm/glide/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendChildLinksSiblings(t *testing.T) {
	tr := tree.New()
	root := tr.NewRoot()
	a := tr.AppendChild(root)
	b := tr.AppendChild(root)
	c := tr.AppendChild(root)

	assert.Equal(t, []tree.NodeID{a, b, c}, tr.Children(root))
	assert.Equal(t, root, tr.Parent(a))
	assert.True(t, tr.NextSibling(a) == b)
	assert.True(t, tr.PrevSibling(c) == b)
	assert.True(t, tr.IsRoot(root))
	assert.False(t, tr.IsRoot(a))
	assert.True(t, tr.IsLeaf(a))
	assert.False(t, tr.IsLeaf(root))
}

func TestInsertAfter(t *testing.T) {
	tr := tree.New()
	root := tr.NewRoot()
	a := tr.AppendChild(root)
	c := tr.AppendChild(root)
	b := tr.InsertAfter(a)

	assert.Equal(t, []tree.NodeID{a, b, c}, tr.Children(root))
}

func TestRemoveFreesGenerationAndDetectsReuse(t *testing.T) {
	tr := tree.New()
	root := tr.NewRoot()
	a := tr.AppendChild(root)
	tr.Remove(a)
	assert.False(t, tr.Valid(a))

	b := tr.AppendChild(root)
	assert.Equal(t, []tree.NodeID{b}, tr.Children(root))

	assert.Panics(t, func() { tr.Parent(a) })
}

func TestRemoveSubtreeEmitsPostorder(t *testing.T) {
	tr := tree.New()
	var removed []tree.NodeID
	tr.OnEvent(func(t *tree.Tree, e tree.Event) {
		if e.Kind == tree.RemovedFromForest {
			removed = append(removed, e.Node)
		}
	})

	root := tr.NewRoot()
	parent := tr.AppendChild(root)
	child1 := tr.AppendChild(parent)
	child2 := tr.AppendChild(parent)

	tr.Remove(parent)
	require.Len(t, removed, 3)
	assert.ElementsMatch(t, []tree.NodeID{parent, child1, child2}, removed)
	// children are freed before their parent
	assert.Less(t, indexOf(removed, child1), indexOf(removed, parent))
	assert.Less(t, indexOf(removed, child2), indexOf(removed, parent))
}

func TestDetachReattachPreservesSubtree(t *testing.T) {
	tr := tree.New()
	root := tr.NewRoot()
	a := tr.AppendChild(root)
	grandchild := tr.AppendChild(a)
	b := tr.AppendChild(root)

	tr.Detach(a)
	assert.True(t, tr.IsRoot(a))
	assert.Equal(t, []tree.NodeID{b}, tr.Children(root))

	tr.Reattach(a, root, b)
	assert.Equal(t, []tree.NodeID{b, a}, tr.Children(root))
	assert.Equal(t, a, tr.Parent(grandchild))
}

func TestWalkOrders(t *testing.T) {
	tr := tree.New()
	root := tr.NewRoot()
	a := tr.AppendChild(root)
	b := tr.AppendChild(root)
	tr.AppendChild(a)

	var pre []tree.NodeID
	tr.WalkPreorder(root, func(n tree.NodeID) { pre = append(pre, n) })
	assert.Equal(t, root, pre[0])
	assert.Equal(t, a, pre[1])

	var post []tree.NodeID
	tr.WalkPostorder(root, func(n tree.NodeID) { post = append(post, n) })
	assert.Equal(t, root, post[len(post)-1])
	_ = b
}

func indexOf(s []tree.NodeID, v tree.NodeID) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
