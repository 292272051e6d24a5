// pathcollapse-bench generates a synthetic stream of bubble topologies
// and drives it through the simplifier, reporting collapse throughput and
// the running driver stats. It exists for manual tuning of
// simplifier.Opts against a given input shape; it is not part of the
// library's public surface.
//
// Usage: pathcollapse-bench -bubbles 10000 -k 21
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/pathcollapse/graph"
	"github.com/grailbio/pathcollapse/kmer"
	"github.com/grailbio/pathcollapse/pos"
	"github.com/grailbio/pathcollapse/simplifier"
	"v.io/x/lib/vlog"
)

var (
	bubblesFlag    = flag.Int("bubbles", 1000, "number of synthetic bubble topologies to generate")
	kFlag          = flag.Int("k", 21, "k-mer length")
	seedFlag       = flag.Int64("seed", 1, "PRNG seed, for reproducible benchmark runs")
	mismatchFlag   = flag.Int("max-mismatch", 2, "simplifier.Opts.MaxBasesMismatch")
	maxLengthFlag  = flag.Int("max-path-collapse-length", 8, "simplifier.Opts.MaxPathCollapseLength")
	bubblesOnly    = flag.Bool("bubbles-and-leaves-only", true, "simplifier.Opts.BubblesAndLeavesOnly")
	widthFlag      = flag.Int("width", 20, "per-node positional interval width")
	spacingFlag    = flag.Int("spacing", 40, "reference-coordinate spacing between successive bubbles")
)

// sliceIterator replays a pre-generated, FirstStart-sorted node slice.
type sliceIterator struct {
	nodes []*graph.PathNode
	i     int
}

func (s *sliceIterator) Next(ctx context.Context) (*graph.PathNode, bool, error) {
	if s.i >= len(s.nodes) {
		return nil, false, nil
	}
	n := s.nodes[s.i]
	s.i++
	return n, true, nil
}

var bases = [4]byte{'A', 'C', 'G', 'T'}

func randSeq(rng *rand.Rand, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = bases[rng.Intn(4)]
	}
	return string(buf)
}

// mutate flips one base of seq at a random position within the first k
// bases, so the resulting bubble stays within a one-base mismatch of the
// original.
func mutate(rng *rand.Rand, seq string, k int) string {
	buf := []byte(seq)
	i := rng.Intn(k)
	cur := buf[i]
	for {
		b := bases[rng.Intn(4)]
		if b != cur {
			buf[i] = b
			break
		}
	}
	return string(buf)
}

func newNode(k int, bases string, first pos.Type, width int, weight uint32) *graph.PathNode {
	km := kmer.MustPack(bases)
	w := make([]uint32, width)
	for i := range w {
		w[i] = weight
	}
	n, err := graph.New(k, []kmer.Kmer{km}, pos.Interval{First: first, Last: first + pos.Type(width-1)}, w, false)
	if err != nil {
		vlog.Fatalf("newNode: %v", err)
	}
	return n
}

// genBubble builds one root -> {heavy, light} -> child topology at the
// given reference offset, where light is a one-base mutation of heavy.
func genBubble(rng *rand.Rand, k, width int, offset pos.Type) []*graph.PathNode {
	root := newNode(k, randSeq(rng, k), offset, width, uint32(1+rng.Intn(3)))
	heavySeq := randSeq(rng, k)
	heavy := newNode(k, heavySeq, offset+pos.Type(width), width, uint32(5+rng.Intn(10)))
	light := newNode(k, mutate(rng, heavySeq, k), offset+pos.Type(width), width, uint32(1+rng.Intn(3)))
	child := newNode(k, randSeq(rng, k), offset+2*pos.Type(width), width, uint32(1+rng.Intn(3)))
	graph.AddEdge(root, heavy)
	graph.AddEdge(root, light)
	graph.AddEdge(heavy, child)
	graph.AddEdge(light, child)
	return []*graph.PathNode{root, heavy, light, child}
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	shutdown := grail.Init()
	defer shutdown()

	rng := rand.New(rand.NewSource(*seedFlag))
	var nodes []*graph.PathNode
	offset := pos.Type(1)
	for i := 0; i < *bubblesFlag; i++ {
		nodes = append(nodes, genBubble(rng, *kFlag, *widthFlag, offset)...)
		offset += pos.Type(*spacingFlag)
	}

	opts := simplifier.Opts{
		K:                     *kFlag,
		MaxPathCollapseLength: *maxLengthFlag,
		MaxBasesMismatch:      *mismatchFlag,
		BubblesAndLeavesOnly:  *bubblesOnly,
	}
	s, err := simplifier.New(&sliceIterator{nodes: nodes}, opts)
	if err != nil {
		vlog.Fatalf("simplifier.New: %v", err)
	}

	ctx := context.Background()
	start := time.Now()
	emitted := 0
	for {
		_, ok, err := s.Next(ctx)
		if err != nil {
			vlog.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		emitted++
	}
	elapsed := time.Since(start)

	stats := s.Stats()
	fmt.Fprintf(os.Stdout, "input nodes:         %d\n", len(nodes))
	fmt.Fprintf(os.Stdout, "emitted nodes:        %d\n", emitted)
	fmt.Fprintf(os.Stdout, "collapses attempted:  %d\n", stats.CollapsesAttempted)
	fmt.Fprintf(os.Stdout, "collapses accepted:   %d\n", stats.CollapsesAccepted)
	fmt.Fprintf(os.Stdout, "bubbles collapsed:    %d\n", stats.BubblesCollapsed)
	fmt.Fprintf(os.Stdout, "leaves collapsed:     %d\n", stats.LeavesCollapsed)
	fmt.Fprintf(os.Stdout, "max unprocessed size: %d\n", stats.MaxUnprocessedSize)
	fmt.Fprintf(os.Stdout, "max processed size:   %d\n", stats.MaxProcessedSize)
	fmt.Fprintf(os.Stdout, "elapsed:              %s\n", elapsed)
}
