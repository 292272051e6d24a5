package buffer

import (
	"testing"

	"github.com/grailbio/pathcollapse/graph"
	"github.com/grailbio/pathcollapse/kmer"
	"github.com/grailbio/pathcollapse/pos"
	"github.com/grailbio/testutil/expect"
)

func node(t *testing.T, first pos.Type, width int) *graph.PathNode {
	t.Helper()
	weight := make([]uint32, width)
	for i := range weight {
		weight[i] = 1
	}
	n, err := graph.New(4, []kmer.Kmer{kmer.MustPack("AAAA")}, pos.Interval{First: first, Last: first + pos.Type(width) - 1}, weight, false)
	expect.NoError(t, err)
	return n
}

func TestOrderedDrainsInKeyOrder(t *testing.T) {
	o := NewOrdered(byFirstStart)
	c := node(t, 30, 1)
	a := node(t, 10, 1)
	b := node(t, 20, 1)
	o.Insert(c)
	o.Insert(a)
	o.Insert(b)
	expect.EQ(t, o.Len(), 3)

	first, ok := o.PopMin()
	expect.True(t, ok)
	expect.EQ(t, first, a)
	second, _ := o.PopMin()
	expect.EQ(t, second, b)
	third, _ := o.PopMin()
	expect.EQ(t, third, c)
	expect.EQ(t, o.Len(), 0)
	_, ok = o.PopMin()
	expect.False(t, ok)
}

func TestOrderedRemove(t *testing.T) {
	o := NewOrdered(byLastEnd)
	a := node(t, 0, 5)
	b := node(t, 100, 1)
	o.Insert(a)
	o.Insert(b)
	o.Remove(a)
	expect.EQ(t, o.Len(), 1)
	min, ok := o.Min()
	expect.True(t, ok)
	expect.EQ(t, min, b)
}

func TestPairDispatchesByLocation(t *testing.T) {
	p := NewPair()
	a := node(t, 0, 1)
	b := node(t, 1, 1)
	p.InsertUnprocessed(a)
	p.InsertProcessed(b)
	expect.EQ(t, a.Location(), graph.LocationUnprocessed)
	expect.EQ(t, b.Location(), graph.LocationProcessed)
	expect.EQ(t, p.Len(), 2)

	p.Remove(a)
	expect.EQ(t, a.Location(), graph.LocationNone)
	expect.EQ(t, p.Len(), 1)

	// Removing an already-absent node is a no-op, not a panic.
	p.Remove(a)
	expect.EQ(t, p.Len(), 1)
}
