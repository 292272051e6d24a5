package graph

import "github.com/grailbio/pathcollapse/pos"

// Subnode is a restriction of a path-node to a sub-interval of its
// positional range (spec §4.3): a (node, subFirstStart, subFirstEnd)
// triple with no independent state of its own.
type Subnode struct {
	Node *PathNode
	Sub  pos.Interval
}

// NewSubnode creates a subnode covering n's full interval.
func NewSubnode(n *PathNode) Subnode {
	return Subnode{Node: n, Sub: n.Interval()}
}

// Restrict creates a subnode covering the given sub-interval of n, which
// must lie within n's own interval.
func Restrict(n *PathNode, sub pos.Interval) Subnode {
	return Subnode{Node: n, Sub: sub}
}

// Length is the subnode's node's chain length.
func (sn Subnode) Length() int { return sn.Node.Length() }

// Width is the width of the subnode's own restricted interval.
func (sn Subnode) Width() int { return sn.Sub.Width() }

// Weight sums the underlying node's per-position weight over Sub.
func (sn Subnode) Weight() int64 {
	full := sn.Node.Interval()
	offset := int(sn.Sub.First - full.First)
	var total int64
	for i := 0; i < sn.Sub.Width(); i++ {
		total += int64(sn.Node.weight[offset+i])
	}
	return total
}

// Overlaps reports whether two subnodes' positional intervals intersect,
// directly comparable since Sub is always expressed in absolute reference
// coordinates regardless of which node it restricts.
func (sn Subnode) Overlaps(other Subnode) bool {
	return sn.Sub.Overlaps(other.Sub)
}

// Next yields one subnode per successor whose interval overlaps this
// subnode's interval shifted forward by this node's length (spec §4.3).
func (sn Subnode) Next() []Subnode {
	frontier := sn.Sub.Shift(pos.Type(sn.Node.Length()))
	var out []Subnode
	for _, s := range sn.Node.successors {
		if iv, ok := frontier.Intersect(s.Interval()); ok {
			out = append(out, Subnode{s, iv})
		}
	}
	return out
}

// Prev yields one subnode per predecessor whose interval overlaps this
// subnode's interval shifted backward by *the predecessor's* length (spec
// §4.3) — each predecessor may have a different length, so the shift is
// computed per-candidate rather than once for the whole call.
func (sn Subnode) Prev() []Subnode {
	var out []Subnode
	for _, p := range sn.Node.predecessors {
		frontier := sn.Sub.Shift(-pos.Type(p.Length()))
		if iv, ok := frontier.Intersect(p.Interval()); ok {
			out = append(out, Subnode{p, iv})
		}
	}
	return out
}
