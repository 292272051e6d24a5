// Package buffer implements the two ordered node buffers the simplifier
// streams path-nodes through (spec §4.5): an "unprocessed" buffer keyed by
// LastEnd and a "processed" buffer keyed by FirstStart. Both are backed by
// github.com/biogo/store/llrb.Tree, the same left-leaning red-black tree
// the teacher repo uses for its N-way merge in
// cmd/bio-bam-sort/sorter/sort.go and for bampair's shard index.
package buffer

import (
	"github.com/biogo/store/llrb"
	"github.com/grailbio/pathcollapse/graph"
)

// CompareFunc orders two path-nodes for a given buffer's key (LastEnd or
// FirstStart), breaking ties with graph.Less so two nodes are never
// "equal" unless they are the same node.
type CompareFunc func(a, b *graph.PathNode) int

// item adapts a *graph.PathNode to llrb.Comparable via an Ordered's
// CompareFunc; llrb.Tree only ever sees items, never raw path-nodes.
type item struct {
	node *graph.PathNode
	cmp  CompareFunc
}

func (it item) Compare(c llrb.Comparable) int {
	other := c.(item)
	return it.cmp(it.node, other.node)
}

// Ordered is a single ordered buffer of path-nodes. Mutating a node's key
// field (its interval, via split or merge) while it is held by an Ordered
// is a caller error: remove it first, mutate, then reinsert (package
// collapse's transform code follows this discipline throughout).
type Ordered struct {
	tree llrb.Tree
	cmp  CompareFunc
	n    int
}

// NewOrdered creates an empty buffer ordered by cmp.
func NewOrdered(cmp CompareFunc) *Ordered {
	return &Ordered{cmp: cmp}
}

// Insert adds n to the buffer.
func (o *Ordered) Insert(n *graph.PathNode) {
	o.tree.Insert(item{node: n, cmp: o.cmp})
	o.n++
}

// Remove deletes n from the buffer. n must currently be present with the
// same key it was inserted under.
func (o *Ordered) Remove(n *graph.PathNode) {
	o.tree.Delete(item{node: n, cmp: o.cmp})
	o.n--
}

// Len reports the number of nodes currently held.
func (o *Ordered) Len() int { return o.n }

// Min returns the least node under the buffer's ordering, and whether the
// buffer is non-empty. Mirrors the teacher's Do-with-early-return idiom
// for peeking the root of an llrb.Tree (sort.go's internalMergeShards).
func (o *Ordered) Min() (*graph.PathNode, bool) {
	var min *graph.PathNode
	o.tree.Do(func(c llrb.Comparable) bool {
		min = c.(item).node
		return true
	})
	return min, min != nil
}

// PopMin removes and returns the least node under the buffer's ordering.
func (o *Ordered) PopMin() (*graph.PathNode, bool) {
	min, ok := o.Min()
	if !ok {
		return nil, false
	}
	o.tree.DeleteMin()
	o.n--
	return min, true
}

// byLastEnd and byFirstStart are the two fixed orderings spec §4.5
// requires: the unprocessed buffer drains in LastEnd order, the processed
// buffer in FirstStart order. Both fall back to graph.Less to keep the
// ordering a strict total order even when two nodes share a coordinate.
func byLastEnd(a, b *graph.PathNode) int {
	if d := int(a.LastEnd() - b.LastEnd()); d != 0 {
		return d
	}
	return tiebreak(a, b)
}

func byFirstStart(a, b *graph.PathNode) int {
	if d := int(a.FirstStart() - b.FirstStart()); d != 0 {
		return d
	}
	return tiebreak(a, b)
}

func tiebreak(a, b *graph.PathNode) int {
	if a == b {
		return 0
	}
	if graph.Less(a, b) {
		return -1
	}
	return 1
}

// Pair bundles the simplifier's two buffers and dispatches insert/remove
// by a node's recorded graph.Location, so callers can move a node without
// naming which buffer it currently lives in.
type Pair struct {
	Unprocessed *Ordered
	Processed   *Ordered
}

// NewPair creates an empty unprocessed/processed buffer pair.
func NewPair() *Pair {
	return &Pair{
		Unprocessed: NewOrdered(byLastEnd),
		Processed:   NewOrdered(byFirstStart),
	}
}

// InsertUnprocessed adds n to the unprocessed buffer and records its
// location on the node.
func (p *Pair) InsertUnprocessed(n *graph.PathNode) {
	p.Unprocessed.Insert(n)
	n.SetLocation(graph.LocationUnprocessed)
}

// InsertProcessed adds n to the processed buffer and records its location.
func (p *Pair) InsertProcessed(n *graph.PathNode) {
	p.Processed.Insert(n)
	n.SetLocation(graph.LocationProcessed)
}

// Remove deletes n from whichever buffer its Location says it occupies,
// and clears that location. It is a no-op if n is in neither buffer.
func (p *Pair) Remove(n *graph.PathNode) {
	switch n.Location() {
	case graph.LocationUnprocessed:
		p.Unprocessed.Remove(n)
	case graph.LocationProcessed:
		p.Processed.Remove(n)
	default:
		return
	}
	n.SetLocation(graph.LocationNone)
}

// Len returns the combined size of both buffers.
func (p *Pair) Len() int { return p.Unprocessed.Len() + p.Processed.Len() }
