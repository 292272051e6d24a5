// Package collapse implements the similar-path search, the tryCollapse
// topology tests, and the structural merge-paths transform (spec §4.6-4.8).
// It is the only package that mutates PathNodes while they are held by a
// buffer.Pair, and is responsible for keeping each buffer's order
// invariant intact across every split/merge.
package collapse

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/pathcollapse/graph"
	"github.com/grailbio/pathcollapse/kmer"
)

// Opts controls the similar-path search and tryCollapse gate (spec §4.5's
// construction parameters, the same four fields as simplifier.Opts).
type Opts struct {
	K                     int
	MaxPathCollapseLength int
	MaxBasesMismatch      int
	BubblesAndLeavesOnly  bool
}

// Topology identifies which tryCollapse topology a successful candidate
// matched, for the driver's per-topology stats (spec §6's Stats.
// BubblesCollapsed/LeavesCollapsed).
type Topology int

const (
	TopologyNone Topology = iota
	TopologyBubble
	TopologyLeaf
)

// candidate is the outcome of a successful similar-path search: two
// parallel subnode lists ready for merge-paths, plus the per-side
// skip-kmer counts tryCollapse computed when aligning tips.
type candidate struct {
	sourcePath, targetPath           []graph.Subnode
	sourceSkipKmers, targetSkipKmers int
	forward                          bool
	topology                         Topology
}

// AttemptAroundNode runs spec §4.6's collapse attempt centred on R: every
// unordered successor pair for the forward (bubble/leaf) pass, then every
// unordered predecessor pair for the reverse pass. It returns true, and
// which topology matched, as soon as any pair collapses.
//
// The source spec document enumerates successors for both passes; this is
// resolved here, per the spec's own recommendation, to enumerate
// predecessors on the reverse pass instead.
func AttemptAroundNode(opts Opts, buffers *Buffers, r *graph.PathNode) (bool, Topology) {
	if ok, topology := collapseUnorderedPairs(opts, buffers, r.Successors(), true); ok {
		return true, topology
	}
	return collapseUnorderedPairs(opts, buffers, r.Predecessors(), false)
}

func collapseUnorderedPairs(opts Opts, buffers *Buffers, neighbours []*graph.PathNode, forward bool) (bool, Topology) {
	for i := 0; i < len(neighbours); i++ {
		for j := i + 1; j < len(neighbours); j++ {
			si, sj := neighbours[i], neighbours[j]
			if ok, topology := collapseSimilarPath(opts, buffers, graph.NewSubnode(si), graph.NewSubnode(sj), forward); ok {
				return true, topology
			}
		}
	}
	return false, TopologyNone
}

// collapseSimilarPath implements spec §4.6's search: walk two path-tree
// cursors rooted at rootA/rootB, extending the shorter one each step,
// until tryCollapse accepts or the search is exhausted.
func collapseSimilarPath(opts Opts, buffers *Buffers, rootA, rootB graph.Subnode, forward bool) (bool, Topology) {
	a := graph.NewCursor(rootA, forward, opts.MaxPathCollapseLength)
	b := graph.NewCursor(rootB, forward, opts.MaxPathCollapseLength)
	return searchStep(opts, buffers, a, b, forward)
}

func searchStep(opts Opts, buffers *Buffers, a, b *graph.Cursor, forward bool) (bool, Topology) {
	if !a.Tip().Overlaps(b.Tip()) {
		return false, TopologyNone
	}
	diff := basesDifferent(opts.K, a, b, forward)
	if diff > opts.MaxBasesMismatch {
		return false, TopologyNone
	}
	if c, ok := tryCollapse(opts, a, b, forward); ok {
		mergePaths(buffers, c)
		return true, c.topology
	}

	// Extend the shorter cursor (ties extend a); recursion is stack-neutral
	// on failure, so every pushed child is popped before returning false. A
	// tied or shorter cursor that has already bottomed out (a terminal leaf)
	// has no children to offer, so fall back to extending the other cursor
	// instead of giving up on the pair entirely.
	shrt, other := a, b
	if b.PathLength() < a.PathLength() {
		shrt, other = b, a
	}
	if ok, topology := extendAndSearch(opts, buffers, a, b, forward, shrt); ok {
		return true, topology
	}
	return extendAndSearch(opts, buffers, a, b, forward, other)
}

// extendAndSearch pushes each of cur's remaining children in turn and
// recurses, popping on failure so the cursor is restored before the next
// sibling (or before control returns to the caller).
func extendAndSearch(opts Opts, buffers *Buffers, a, b *graph.Cursor, forward bool, cur *graph.Cursor) (bool, Topology) {
	for cur.DFSNextChild() {
		if ok, topology := searchStep(opts, buffers, a, b, forward); ok {
			return true, topology
		}
		cur.DFSPop()
	}
	return false, TopologyNone
}

func flattenChain(path []graph.Subnode) []kmer.Kmer {
	var out []kmer.Kmer
	for _, sn := range path {
		out = append(out, sn.Node.Chain()...)
	}
	return out
}

func basesDifferent(k int, a, b *graph.Cursor, forward bool) int {
	pathA := flattenChain(a.CurrentPath())
	pathB := flattenChain(b.CurrentPath())
	if forward {
		return kmer.BasesDifferent(k, pathA, pathB)
	}
	return kmer.ReverseBasesDifferent(k, pathA, pathB)
}

// pathNodeRepeated reports whether any path-node appears more than once
// across the union of a and b (spec §9, "Repeated path-nodes in a
// traversal"). Callers exclude whatever is legitimately expected to be
// shared before calling this (e.g. a common-child bubble's shared tip).
func pathNodeRepeated(a, b []graph.Subnode) bool {
	seen := make(map[*graph.PathNode]bool, len(a)+len(b))
	for _, sn := range a {
		if seen[sn.Node] {
			return true
		}
		seen[sn.Node] = true
	}
	for _, sn := range b {
		if seen[sn.Node] {
			return true
		}
		seen[sn.Node] = true
	}
	return false
}

func logRejected(reason string) {
	log.Debug.Printf("collapse: candidate pair rejected: %s", reason)
}
