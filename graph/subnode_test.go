package graph

import (
	"testing"

	"github.com/grailbio/pathcollapse/kmer"
	"github.com/grailbio/pathcollapse/pos"
	"github.com/grailbio/testutil/expect"
)

func mustNode(t *testing.T, first pos.Type, length int, weight []uint32) *PathNode {
	t.Helper()
	chain := make([]kmer.Kmer, length)
	for i := range chain {
		chain[i] = kmer.MustPack("AAAA")
	}
	n, err := New(4, chain, pos.Interval{First: first, Last: first + pos.Type(len(weight)) - 1}, weight, false)
	expect.NoError(t, err)
	return n
}

func TestSubnodeWeight(t *testing.T) {
	n := mustNode(t, 0, 3, []uint32{1, 2, 3})
	sn := Restrict(n, pos.Interval{First: 1, Last: 2})
	expect.EQ(t, sn.Weight(), int64(5))
}

func TestSubnodeNextShiftsByLength(t *testing.T) {
	a := mustNode(t, 0, 3, []uint32{1, 1, 1})
	b := mustNode(t, 3, 2, []uint32{1, 1, 1, 1})
	AddEdge(a, b)

	sn := NewSubnode(a)
	next := sn.Next()
	expect.EQ(t, len(next), 1)
	expect.EQ(t, next[0].Node, b)
	expect.EQ(t, next[0].Sub, pos.Interval{First: 3, Last: 5})
}

func TestSubnodePrevPerPredecessorLength(t *testing.T) {
	// a: length 2, interval [9,10]; successorFrontier = [11,12].
	a := mustNode(t, 9, 2, []uint32{1, 1})
	// b: length 5, interval [5,6]; successorFrontier = [10,11].
	b := mustNode(t, 5, 5, []uint32{1, 1})
	// target: interval [10,12], overlapped by both frontiers above.
	target := mustNode(t, 10, 3, []uint32{1, 1, 1})
	AddEdge(a, target)
	AddEdge(b, target)

	sn := NewSubnode(target)
	prev := sn.Prev()
	expect.EQ(t, len(prev), 2)
	for _, p := range prev {
		if p.Node == a {
			expect.EQ(t, p.Sub, pos.Interval{First: 9, Last: 10})
		}
		if p.Node == b {
			expect.EQ(t, p.Sub, pos.Interval{First: 5, Last: 6})
		}
	}
}

func TestSubnodeOverlaps(t *testing.T) {
	n := mustNode(t, 0, 3, []uint32{1, 2, 3})
	a := Restrict(n, pos.Interval{First: 0, Last: 1})
	b := Restrict(n, pos.Interval{First: 1, Last: 2})
	c := Restrict(n, pos.Interval{First: 2, Last: 2})
	expect.True(t, a.Overlaps(b))
	expect.True(t, b.Overlaps(c))
	expect.False(t, a.Overlaps(c))
}
