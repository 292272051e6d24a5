package collapse

import (
	"testing"

	"github.com/grailbio/pathcollapse/buffer"
	"github.com/grailbio/pathcollapse/graph"
	"github.com/grailbio/pathcollapse/kmer"
	"github.com/grailbio/pathcollapse/pos"
	"github.com/grailbio/testutil/expect"
)

func mkNode(t *testing.T, bases string, first pos.Type, weight uint32) *graph.PathNode {
	t.Helper()
	k := kmer.MustPack(bases)
	n, err := graph.New(4, []kmer.Kmer{k}, pos.Interval{First: first, Last: first + 9}, repeat(weight, 10), false)
	expect.NoError(t, err)
	return n
}

func repeat(v uint32, n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func insertBoth(buffers *Buffers, nodes ...*graph.PathNode) {
	for _, n := range nodes {
		buffers.InsertProcessed(n)
	}
}

// buildBubble constructs S2's topology: root -> {branchA, branchB} -> child,
// all single-kmer nodes over the same [first,first+9] interval window so
// every edge is geometrically valid under PathNode's overlap rule.
func buildBubble(t *testing.T) (root, a, b, child *graph.PathNode) {
	root = mkNode(t, "AAAA", 1, 1)
	a = mkNode(t, "AAAT", 2, 2)
	b = mkNode(t, "AAAG", 2, 1)
	child = mkNode(t, "AATA", 3, 1)
	graph.AddEdge(root, a)
	graph.AddEdge(root, b)
	graph.AddEdge(a, child)
	graph.AddEdge(b, child)
	return
}

func TestAttemptAroundNodeCollapsesSimpleBubble(t *testing.T) {
	root, a, b, child := buildBubble(t)
	buffers := buffer.NewPair()
	insertBoth(buffers, root, a, b, child)

	opts := Opts{K: 4, MaxPathCollapseLength: 5, MaxBasesMismatch: 1, BubblesAndLeavesOnly: false}
	ok, topology := AttemptAroundNode(opts, buffers, root)
	expect.True(t, ok)
	expect.True(t, topology == TopologyBubble)

	// The lighter branch (b, weight 1) merged into the heavier (a, weight 2):
	// exactly one of {a, b} should remain reachable from root with combined
	// weight, and child should still have a single predecessor.
	succ := root.Successors()
	expect.EQ(t, len(succ), 1)
	expect.EQ(t, succ[0].TotalWeight(), int64(30))
}

func TestAttemptAroundNodeRejectsTooManyMismatches(t *testing.T) {
	root := mkNode(t, "AAAA", 1, 1)
	a := mkNode(t, "AAAT", 2, 2)
	b := mkNode(t, "TTTT", 2, 1)
	child := mkNode(t, "AATA", 3, 1)
	graph.AddEdge(root, a)
	graph.AddEdge(root, b)
	graph.AddEdge(a, child)
	graph.AddEdge(b, child)

	buffers := buffer.NewPair()
	insertBoth(buffers, root, a, b, child)

	opts := Opts{K: 4, MaxPathCollapseLength: 5, MaxBasesMismatch: 1, BubblesAndLeavesOnly: false}
	ok, _ := AttemptAroundNode(opts, buffers, root)
	expect.False(t, ok)
	expect.EQ(t, len(root.Successors()), 2)
}

func TestPathNodeRepeatedDetectsSharedNonRootNode(t *testing.T) {
	shared := mkNode(t, "AAAA", 0, 1)
	other := mkNode(t, "CCCC", 0, 1)
	a := []graph.Subnode{graph.NewSubnode(shared), graph.NewSubnode(other)}
	b := []graph.Subnode{graph.NewSubnode(mkNode(t, "GGGG", 0, 1)), graph.NewSubnode(other)}
	expect.True(t, pathNodeRepeated(a, b))
}

func TestPathNodeRepeatedDetectsSharedLeadingNode(t *testing.T) {
	shared := mkNode(t, "AAAA", 0, 1)
	a := []graph.Subnode{graph.NewSubnode(shared), graph.NewSubnode(mkNode(t, "CCCC", 0, 1))}
	b := []graph.Subnode{graph.NewSubnode(shared), graph.NewSubnode(mkNode(t, "GGGG", 0, 1))}
	expect.True(t, pathNodeRepeated(a, b))
}

func TestIsPureBubbleBodyRejectsExternalEdge(t *testing.T) {
	mid := mkNode(t, "AAAA", 0, 1)
	pred := mkNode(t, "CCCC", 0, 1)
	succ := mkNode(t, "GGGG", 0, 1)
	graph.AddEdge(pred, mid)
	graph.AddEdge(mid, succ)
	body := []graph.Subnode{graph.NewSubnode(mid)}
	expect.True(t, isPureBubbleBody(body))

	extra := mkNode(t, "TTTT", 0, 1)
	graph.AddEdge(extra, mid)
	expect.False(t, isPureBubbleBody(body))
}
