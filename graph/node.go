// Package graph implements the path-node primitive (spec §3, §4.2), its
// subnode view (§4.3), and the depth-first path-tree cursor used to walk
// candidate collapse paths (§4.4).
//
// A path-node is a maximal unbranched chain of k-mers together with the
// positional interval at which its first k-mer is observed. Edges between
// path-nodes are weak identity references: splitting or merging a node is
// this package's job, and every split/merge rewires the affected
// neighbours' edge lists in place (spec §9, "Cyclic/shared references").
package graph

import (
	"sort"
	"sync/atomic"

	"github.com/grailbio/pathcollapse/internal/errs"
	"github.com/grailbio/pathcollapse/kmer"
	"github.com/grailbio/pathcollapse/pos"
)

// Location records which of the simplifier's two ordered buffers currently
// owns a node, so that split/merge code (package collapse) can remove and
// reinsert a mutated node without the graph package needing to import the
// buffer package.
type Location uint8

const (
	// LocationNone means the node is not currently held by either buffer
	// (e.g. freshly constructed, or already emitted downstream).
	LocationNone Location = iota
	// LocationUnprocessed means the node lives in the unprocessed buffer.
	LocationUnprocessed
	// LocationProcessed means the node lives in the processed buffer.
	LocationProcessed
)

var nextNodeID int64

func newID() int64 { return atomic.AddInt64(&nextNodeID, 1) }

// PathNode is the fundamental entity of spec §3: a chain of co-linear
// k-mers, a positional interval, per-position weights, a reference flag,
// and bidirectional edges to neighbouring path-nodes.
type PathNode struct {
	id int64

	k        int
	chain    []kmer.Kmer
	interval pos.Interval
	// weight holds one read-support count per position in interval, so
	// len(weight) == interval.Width().
	weight      []uint32
	isReference bool

	predecessors []*PathNode
	successors   []*PathNode

	location Location
}

// New creates a path-node. weight must have exactly interval.Width()
// entries.
func New(k int, chain []kmer.Kmer, interval pos.Interval, weight []uint32, isReference bool) (*PathNode, error) {
	if len(chain) == 0 {
		return nil, errs.New(errs.MalformedInput, "graph.New", "empty k-mer chain")
	}
	if !interval.Valid() {
		return nil, errs.New(errs.MalformedInput, "graph.New", "inverted interval")
	}
	if len(weight) != interval.Width() {
		return nil, errs.New(errs.MalformedInput, "graph.New", "weight/width mismatch")
	}
	w := make([]uint32, len(weight))
	copy(w, weight)
	return &PathNode{
		id:          newID(),
		k:           k,
		chain:       append([]kmer.Kmer(nil), chain...),
		interval:    interval,
		weight:      w,
		isReference: isReference,
	}, nil
}

// ID is a stable arena identifier, used only for deterministic tie-breaking
// (spec §9, "Tie-breaking") and debug output; it carries no graph meaning.
func (n *PathNode) ID() int64 { return n.id }

// K is the k-mer length used to encode Chain.
func (n *PathNode) K() int { return n.k }

// Chain is the node's ordered, read-only k-mer sequence.
func (n *PathNode) Chain() []kmer.Kmer { return n.chain }

// Length is the number of k-mers in the chain.
func (n *PathNode) Length() int { return len(n.chain) }

// Interval is the node's first-k-mer positional interval [FirstStart,
// FirstEnd].
func (n *PathNode) Interval() pos.Interval { return n.interval }

// Width is the number of distinct start positions, interval.Width().
func (n *PathNode) Width() int { return n.interval.Width() }

// FirstStart/FirstEnd/LastStart/LastEnd are the four coordinate accessors
// from spec §3.
func (n *PathNode) FirstStart() pos.Type { return n.interval.First }
func (n *PathNode) FirstEnd() pos.Type   { return n.interval.Last }
func (n *PathNode) LastStart() pos.Type  { return n.interval.First + pos.Type(n.Length()-1) }
func (n *PathNode) LastEnd() pos.Type    { return n.interval.Last + pos.Type(n.Length()-1) }

// FirstKmer is the node's first k-mer; (FirstKmer, FirstStart) is globally
// unique within the live graph (spec §3 invariant 2).
func (n *PathNode) FirstKmer() kmer.Kmer { return n.chain[0] }

// Weight returns a copy of the per-position weight vector.
func (n *PathNode) Weight() []uint32 {
	w := make([]uint32, len(n.weight))
	copy(w, n.weight)
	return w
}

// TotalWeight sums the per-position weight vector.
func (n *PathNode) TotalWeight() int64 {
	var total int64
	for _, w := range n.weight {
		total += int64(w)
	}
	return total
}

// IsReference reports the node's reference flag.
func (n *PathNode) IsReference() bool { return n.isReference }

// Predecessors/Successors return read-only views of the node's edge lists.
func (n *PathNode) Predecessors() []*PathNode { return append([]*PathNode(nil), n.predecessors...) }
func (n *PathNode) Successors() []*PathNode   { return append([]*PathNode(nil), n.successors...) }

// Location/SetLocation are used only for buffer bookkeeping, by packages
// buffer, collapse and simplifier.
func (n *PathNode) Location() Location     { return n.location }
func (n *PathNode) SetLocation(l Location) { n.location = l }

// successorFrontier is the positional interval, in absolute reference
// coordinates, at which n's last k-mer sits (spec §3's edge definition):
// [interval.First + Length, interval.Last + Length]. A successor S is
// connected iff S.Interval() overlaps this frontier shifted by the edge's
// implicit +1 (k-mer overlap) step, i.e. overlaps successorFrontier()
// directly, since successorFrontier already folds in the "+1" by using
// Length (== lastKmerOffset + 1) rather than Length-1.
func (n *PathNode) successorFrontier() pos.Interval {
	return n.interval.Shift(pos.Type(n.Length()))
}

// hasSuccessorEdgeTo reports whether n and candidate satisfy spec §3's edge
// existence rule.
func (n *PathNode) hasSuccessorEdgeTo(candidate *PathNode) bool {
	return n.successorFrontier().Overlaps(candidate.interval)
}

func addEdgeDedup(list *[]*PathNode, n *PathNode) {
	for _, existing := range *list {
		if existing == n {
			return
		}
	}
	*list = append(*list, n)
}

func removeEdge(list *[]*PathNode, n *PathNode) {
	out := (*list)[:0]
	for _, existing := range *list {
		if existing != n {
			out = append(out, existing)
		}
	}
	*list = out
}

// AddEdge records a (deduplicated) bidirectional edge from n to succ,
// matching spec §3 invariant 3.
func AddEdge(n, succ *PathNode) {
	addEdgeDedup(&n.successors, succ)
	addEdgeDedup(&succ.predecessors, n)
}

// RemoveEdge removes a bidirectional edge between n and succ, if present.
func RemoveEdge(n, succ *PathNode) {
	removeEdge(&n.successors, succ)
	removeEdge(&succ.predecessors, n)
}

// sortedChainKey returns the node's reconstructed bases as a string, used to break ties
// deterministically between two candidate source/target paths (spec §9).
func (n *PathNode) sortedChainKey() string {
	return string(kmer.ChainBases(n.k, n.chain))
}

// Less gives a total, deterministic order across path-nodes for tie-break
// purposes only (lexicographic on k-mer chain, then arena id).
func Less(a, b *PathNode) bool {
	ka, kb := a.sortedChainKey(), b.sortedChainKey()
	if ka != kb {
		return ka < kb
	}
	return a.id < b.id
}

// sortNodes returns a copy of nodes sorted by Less. It currently has no
// caller: collapse enumerates successor and predecessor pairs in edge-list
// order.
func sortNodes(nodes []*PathNode) []*PathNode {
	out := append([]*PathNode(nil), nodes...)
	sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}
