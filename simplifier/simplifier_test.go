package simplifier

import (
	"context"
	"testing"

	"github.com/grailbio/pathcollapse/graph"
	"github.com/grailbio/pathcollapse/kmer"
	"github.com/grailbio/pathcollapse/pos"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

// sliceIterator replays a fixed slice of path-nodes as an Iterator, then
// reports exhaustion. Nodes must already be in non-decreasing FirstStart
// order, matching the upstream contract.
type sliceIterator struct {
	nodes []*graph.PathNode
	i     int
	err   error
}

func (s *sliceIterator) Next(ctx context.Context) (*graph.PathNode, bool, error) {
	if s.err != nil && s.i >= len(s.nodes) {
		return nil, false, s.err
	}
	if s.i >= len(s.nodes) {
		return nil, false, nil
	}
	n := s.nodes[s.i]
	s.i++
	return n, true, nil
}

func repeatWeight(v uint32, n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func mkNode(t *testing.T, bases string, first pos.Type, weight uint32) *graph.PathNode {
	t.Helper()
	k := kmer.MustPack(bases)
	n, err := graph.New(4, []kmer.Kmer{k}, pos.Interval{First: first, Last: first + 9}, repeatWeight(weight, 10), false)
	require.NoError(t, err)
	return n
}

func drainAll(t *testing.T, s *Simplifier) []*graph.PathNode {
	t.Helper()
	var out []*graph.PathNode
	for {
		n, ok, err := s.Next(context.Background())
		expect.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, n)
	}
}

// TestSimplifierPassesThroughSingleNodeUnchanged: with nothing to collapse
// against, a single input node comes out identical to how it went in.
func TestSimplifierPassesThroughSingleNodeUnchanged(t *testing.T) {
	k := kmer.MustPack("AAAATG")
	in, err := graph.New(6, []kmer.Kmer{k}, pos.Interval{First: 10, Last: 10}, []uint32{1}, false)
	expect.NoError(t, err)
	upstream := &sliceIterator{nodes: []*graph.PathNode{in}}

	s, err := New(upstream, DefaultOpts)
	expect.NoError(t, err)

	out := drainAll(t, s)
	expect.EQ(t, len(out), 1)
	expect.True(t, out[0] == in)
	expect.EQ(t, out[0].TotalWeight(), in.TotalWeight())
	expect.EQ(t, s.Stats().CollapsesAccepted, int64(0))
}

func TestSimplifierEmitsDisjointNodesInFirstStartOrder(t *testing.T) {
	a := mkNode(t, "AAAA", 1, 1)
	b := mkNode(t, "CCCC", 50, 1)
	c := mkNode(t, "GGGG", 100, 1)
	upstream := &sliceIterator{nodes: []*graph.PathNode{a, b, c}}

	s, err := New(upstream, Opts{K: 4, MaxPathCollapseLength: 5, MaxBasesMismatch: 1, BubblesAndLeavesOnly: false})
	expect.NoError(t, err)

	out := drainAll(t, s)
	expect.EQ(t, len(out), 3)
	for i := 1; i < len(out); i++ {
		expect.True(t, out[i-1].FirstStart() <= out[i].FirstStart())
	}
	expect.EQ(t, s.Stats().NodesEmitted, int64(3))
}

func TestSimplifierCollapsesBubbleAcrossStream(t *testing.T) {
	root := mkNode(t, "AAAA", 1, 1)
	a := mkNode(t, "AAAT", 2, 2)
	b := mkNode(t, "AAAG", 2, 1)
	child := mkNode(t, "AATA", 3, 1)
	graph.AddEdge(root, a)
	graph.AddEdge(root, b)
	graph.AddEdge(a, child)
	graph.AddEdge(b, child)

	upstream := &sliceIterator{nodes: []*graph.PathNode{root, a, b, child}}
	s, err := New(upstream, Opts{K: 4, MaxPathCollapseLength: 5, MaxBasesMismatch: 1, BubblesAndLeavesOnly: false})
	expect.NoError(t, err)

	out := drainAll(t, s)

	// The two branches collapse into one: three nodes remain (root, the
	// merged branch, child), and total weight is conserved.
	expect.EQ(t, len(out), 3)
	var total int64
	for _, n := range out {
		total += n.TotalWeight()
	}
	expect.EQ(t, total, int64(10+30+10))
	expect.EQ(t, s.Stats().CollapsesAccepted, int64(1))
	expect.EQ(t, s.Stats().BubblesCollapsed, int64(1))
	expect.EQ(t, s.Stats().LeavesCollapsed, int64(0))
}

func TestSimplifierConservesTotalWeightWithoutEdges(t *testing.T) {
	nodes := []*graph.PathNode{
		mkNode(t, "AAAA", 1, 3),
		mkNode(t, "CCCC", 20, 5),
		mkNode(t, "GGGG", 40, 7),
	}
	var want int64
	for _, n := range nodes {
		want += n.TotalWeight()
	}
	upstream := &sliceIterator{nodes: nodes}
	s, err := New(upstream, DefaultOpts)
	expect.NoError(t, err)

	out := drainAll(t, s)
	var got int64
	for _, n := range out {
		got += n.TotalWeight()
	}
	expect.EQ(t, got, want)
}

func TestSimplifierPropagatesUpstreamError(t *testing.T) {
	upstream := &sliceIterator{err: errBoom{}}
	s, err := New(upstream, DefaultOpts)
	expect.NoError(t, err)

	_, ok, nextErr := s.Next(context.Background())
	expect.False(t, ok)
	expect.NotNil(t, nextErr)
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func TestNewRejectsInvalidOpts(t *testing.T) {
	upstream := &sliceIterator{}
	_, err := New(upstream, Opts{K: 0})
	expect.NotNil(t, err)
}
