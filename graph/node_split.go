package graph

import (
	"github.com/grailbio/pathcollapse/internal/errs"
	"github.com/grailbio/pathcollapse/kmer"
	"github.com/grailbio/pathcollapse/pos"
)

// SplitAtLength partitions n (length L) into a prefix of length ln and a
// suffix of length L-ln (spec §4.2). The prefix inherits n's predecessors,
// the suffix inherits n's successors, and a new prefix->suffix edge is
// added unconditionally (consecutive k-mers in an unbranched chain always
// (k-1)-overlap at every shared position, so the internal edge spans the
// whole width). n itself is detached from the graph; callers are
// responsible for removing n from, and inserting prefix and suffix into,
// whichever buffer held n (package collapse does this).
func (n *PathNode) SplitAtLength(ln int) (prefix, suffix *PathNode, err error) {
	L := n.Length()
	if ln <= 0 || ln >= L {
		return nil, nil, errs.New(errs.InvariantViolation, "PathNode.SplitAtLength",
			"length out of range for node")
	}

	prefix = &PathNode{
		id:          newID(),
		k:           n.k,
		chain:       append([]kmer.Kmer(nil), n.chain[:ln]...),
		interval:    n.interval,
		weight:      n.Weight(),
		isReference: n.isReference,
		location:    n.location,
	}
	suffix = &PathNode{
		id:          newID(),
		k:           n.k,
		chain:       append([]kmer.Kmer(nil), n.chain[ln:]...),
		interval:    n.interval.Shift(pos.Type(ln)),
		weight:      n.Weight(),
		isReference: n.isReference,
		location:    n.location,
	}

	for _, p := range n.predecessors {
		removeEdge(&p.successors, n)
		AddEdge(p, prefix)
	}
	for _, s := range n.successors {
		removeEdge(&s.predecessors, n)
		AddEdge(suffix, s)
	}
	AddEdge(prefix, suffix)

	n.predecessors = nil
	n.successors = nil
	return prefix, suffix, nil
}

// SplitAtStartPosition partitions n's positional interval [a,b] at p into a
// left node covering [a, p-1] and a right node covering [p, b], both
// sharing n's k-mer chain (spec §4.2). Edges are rebuilt by intersecting
// each neighbour's edge-existence range against the two new intervals, so a
// neighbour whose edge only covered part of [a,b] attaches to just the
// matching side (or both, if its own width straddles p).
func (n *PathNode) SplitAtStartPosition(p pos.Type) (left, right *PathNode, err error) {
	a, b := n.FirstStart(), n.FirstEnd()
	if !(a < p && p <= b) {
		return nil, nil, errs.New(errs.InvariantViolation, "PathNode.SplitAtStartPosition",
			"split position out of range")
	}
	width := n.Width()
	leftWidth := int(p - a)

	left = &PathNode{
		id:          newID(),
		k:           n.k,
		chain:       append([]kmer.Kmer(nil), n.chain...),
		interval:    pos.Interval{First: a, Last: p - 1},
		weight:      append([]uint32(nil), n.weight[:leftWidth]...),
		isReference: n.isReference,
		location:    n.location,
	}
	right = &PathNode{
		id:          newID(),
		k:           n.k,
		chain:       append([]kmer.Kmer(nil), n.chain...),
		interval:    pos.Interval{First: p, Last: b},
		weight:      append([]uint32(nil), n.weight[leftWidth:width]...),
		isReference: n.isReference,
		location:    n.location,
	}

	for _, pred := range n.predecessors {
		removeEdge(&pred.successors, n)
		frontier := pred.successorFrontier()
		if frontier.Overlaps(left.interval) {
			AddEdge(pred, left)
		}
		if frontier.Overlaps(right.interval) {
			AddEdge(pred, right)
		}
	}
	for _, succ := range n.successors {
		removeEdge(&succ.predecessors, n)
		if left.hasSuccessorEdgeTo(succ) {
			AddEdge(left, succ)
		}
		if right.hasSuccessorEdgeTo(succ) {
			AddEdge(right, succ)
		}
	}

	n.predecessors = nil
	n.successors = nil
	return left, right, nil
}

// Merge folds other into n in place (spec §4.2). The two must share an
// identical positional interval and length, but not necessarily an
// identical k-mer chain: n is the heavier (or tie-break-preferred) side of
// a collapse, so n's chain is kept as the corrected sequence and other's
// bases, which may differ by up to the collapse's mismatch budget, are
// discarded along with other itself. Weights are summed position-wise,
// reference flags OR-ed, and edge lists unioned with neighbours of other
// rewired to point at n. other is left fully detached and must not be
// used again; the caller removes it from its buffer.
func (n *PathNode) Merge(other *PathNode) error {
	if n.interval != other.interval || n.Length() != other.Length() {
		return errs.New(errs.InvariantViolation, "PathNode.Merge", "mismatched interval/length")
	}
	for i := range n.weight {
		n.weight[i] += other.weight[i]
	}
	n.isReference = n.isReference || other.isReference

	for _, p := range other.predecessors {
		if p == n {
			continue
		}
		removeEdge(&p.successors, other)
		AddEdge(p, n)
	}
	for _, s := range other.successors {
		if s == n {
			continue
		}
		removeEdge(&s.predecessors, other)
		AddEdge(n, s)
	}
	other.predecessors = nil
	other.successors = nil
	other.location = LocationNone
	return nil
}
