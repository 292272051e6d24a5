package graph

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

// chain: a -> b -> c, lengths 2,2,2, contiguous intervals.
func buildChain(t *testing.T) (a, b, c *PathNode) {
	a = mustNode(t, 0, 2, []uint32{1, 1})
	b = mustNode(t, 2, 2, []uint32{1, 1})
	c = mustNode(t, 4, 2, []uint32{1, 1})
	AddEdge(a, b)
	AddEdge(b, c)
	return
}

func TestCursorForwardWalksChain(t *testing.T) {
	a, b, c := buildChain(t)
	cur := NewCursor(NewSubnode(a), true, 100)
	expect.EQ(t, cur.PathLength(), 2)
	expect.True(t, cur.DFSNextChild())
	expect.EQ(t, cur.Tip().Node, b)
	expect.EQ(t, cur.PathLength(), 4)
	expect.True(t, cur.DFSNextChild())
	expect.EQ(t, cur.Tip().Node, c)
	expect.EQ(t, cur.PathLength(), 6)
	expect.False(t, cur.DFSNextChild())
}

func TestCursorRespectsMaxLength(t *testing.T) {
	a, _, _ := buildChain(t)
	cur := NewCursor(NewSubnode(a), true, 3)
	// b has length 2; 2 (a) + 2 (b) = 4 > maxLen 3, so no children fit.
	expect.False(t, cur.DFSNextChild())
}

func TestCursorPopReturnsToParent(t *testing.T) {
	a, b, _ := buildChain(t)
	cur := NewCursor(NewSubnode(a), true, 100)
	expect.True(t, cur.DFSNextChild())
	expect.EQ(t, cur.Tip().Node, b)
	expect.True(t, cur.DFSPop())
	expect.EQ(t, cur.Tip().Node, a)
	expect.False(t, cur.DFSPop())
}

func TestCursorRejectsRepeatedPathNode(t *testing.T) {
	a, b, c := buildChain(t)
	AddEdge(c, a) // cycle back to a
	cur := NewCursor(NewSubnode(a), true, 100)
	expect.True(t, cur.DFSNextChild()) // -> b
	expect.EQ(t, cur.Tip().Node, b)
	expect.True(t, cur.DFSNextChild()) // -> c
	expect.EQ(t, cur.Tip().Node, c)
	expect.False(t, cur.DFSNextChild())
}

func TestCursorFirstTerminalLeaf(t *testing.T) {
	a, _, c := buildChain(t)
	cur := NewCursor(NewSubnode(a), true, 100)
	leaf, depth := cur.FirstTerminalLeaf()
	expect.EQ(t, leaf.Node, c)
	expect.EQ(t, depth, 2)
}
