// Package pos defines the reference-coordinate primitives shared across
// pathcollapse: a position type and the inclusive positional interval that
// every path-node carries. The shape follows fusion.Pos and
// fusion.PosRange (github.com/grailbio/bio/fusion/position.go) and the
// BED-style coordinate type in github.com/grailbio/bio/interval, widened to
// int64 since a path-node's interval tracks every observed k-mer start
// across a whole assembly buffer rather than a single BED annotation.
package pos

import "math"

// Type is a reference-genome coordinate. Path-node intervals, k-mer
// positions, and buffer ordering keys are all expressed in Type.
type Type int64

// Max is the largest representable Type, used as the "infinity" sentinel
// for the process/emit horizons once the upstream iterator is exhausted.
const Max = Type(math.MaxInt64)

// Interval is an inclusive reference-coordinate range [First, Last], the
// representation of a path-node's positional interval (spec: "the range of
// reference-coordinate start positions at which the chain is observed").
type Interval struct {
	First, Last Type
}

// Valid reports whether the interval respects First <= Last.
func (iv Interval) Valid() bool { return iv.First <= iv.Last }

// Width is the number of distinct start positions covered, i.e.
// Last - First + 1.
func (iv Interval) Width() int { return int(iv.Last-iv.First) + 1 }

// Shift translates the interval by delta, used to move from a node's
// first-k-mer interval to its last-k-mer interval and back.
func (iv Interval) Shift(delta Type) Interval {
	return Interval{iv.First + delta, iv.Last + delta}
}

// Intersect returns the overlap of iv and other, and whether it is
// non-empty.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	first := iv.First
	if other.First > first {
		first = other.First
	}
	last := iv.Last
	if other.Last < last {
		last = other.Last
	}
	if first > last {
		return Interval{}, false
	}
	return Interval{first, last}, true
}

// Overlaps reports whether iv and other share at least one coordinate.
func (iv Interval) Overlaps(other Interval) bool {
	_, ok := iv.Intersect(other)
	return ok
}

// Equal reports whether iv and other cover exactly the same range.
func (iv Interval) Equal(other Interval) bool {
	return iv.First == other.First && iv.Last == other.Last
}
