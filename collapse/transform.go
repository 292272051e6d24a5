package collapse

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/pathcollapse/buffer"
	"github.com/grailbio/pathcollapse/graph"
	"github.com/grailbio/pathcollapse/pos"
)

// Buffers is the buffer.Pair a collapse transform mutates. Every split or
// merge below removes the affected node from whichever buffer currently
// holds it before mutating, then reinserts the resulting node(s) into that
// same buffer, preserving both buffers' order invariants (spec §4.8's
// closing paragraph).
type Buffers = buffer.Pair

// reinsert places n back into whichever buffer loc names; LocationNone is
// a no-op, so the halves of a node that was in neither buffer stay out of
// both.
func reinsert(buffers *Buffers, n *graph.PathNode, loc graph.Location) {
	switch loc {
	case graph.LocationUnprocessed:
		buffers.InsertUnprocessed(n)
	case graph.LocationProcessed:
		buffers.InsertProcessed(n)
	}
}

// splitAtLengthInBuffer performs graph.PathNode.SplitAtLength while
// preserving buffer membership: n is removed first (its key is about to
// become invalid), split, then both halves are reinserted where n used to
// live.
func splitAtLengthInBuffer(buffers *Buffers, n *graph.PathNode, ln int) (prefix, suffix *graph.PathNode) {
	loc := n.Location()
	buffers.Remove(n)
	prefix, suffix, err := n.SplitAtLength(ln)
	if err != nil {
		log.Fatalf("collapse: splitAtLength invariant violated: %v", err)
	}
	reinsert(buffers, prefix, loc)
	reinsert(buffers, suffix, loc)
	return prefix, suffix
}

// splitAtStartInBuffer is splitAtLengthInBuffer's position-split sibling.
func splitAtStartInBuffer(buffers *Buffers, n *graph.PathNode, p pos.Type) (left, right *graph.PathNode) {
	loc := n.Location()
	buffers.Remove(n)
	left, right, err := n.SplitAtStartPosition(p)
	if err != nil {
		log.Fatalf("collapse: splitAtStartPosition invariant violated: %v", err)
	}
	reinsert(buffers, left, loc)
	reinsert(buffers, right, loc)
	return left, right
}

// mergePaths implements spec §4.8 over a tryCollapse candidate: trim
// leading skip-kmers, position-split each path to the traversal's
// intersected intervals, length-align node boundaries across the two
// paths, then merge corresponding pairs.
func mergePaths(buffers *Buffers, c candidate) {
	source := trimStartKmers(buffers, c.sourcePath, c.sourceSkipKmers)
	target := trimStartKmers(buffers, c.targetPath, c.targetSkipKmers)

	source = positionSplit(buffers, source)
	target = positionSplit(buffers, target)

	source, target = lengthAlign(buffers, source, target)

	n := len(source)
	if len(target) < n {
		n = len(target)
	}
	for i := 0; i < n; i++ {
		mergeOne(buffers, source[i].Node, target[i].Node)
	}
}

// trimStartKmers drops the leading `skip` k-mers from path, length-splitting
// the first node if the cut falls mid-node. skip == 0 is a no-op (spec §9,
// resolving the trimStartKmers(0) open question as accept-and-return).
func trimStartKmers(buffers *Buffers, path []graph.Subnode, skip int) []graph.Subnode {
	if skip <= 0 || len(path) == 0 {
		return path
	}
	out := append([]graph.Subnode(nil), path...)
	remaining := skip
	for len(out) > 0 && remaining > 0 {
		head := out[0]
		switch {
		case remaining >= head.Node.Length():
			remaining -= head.Node.Length()
			out = out[1:]
		default:
			_, suffix := splitAtLengthInBuffer(buffers, head.Node, remaining)
			out[0] = graph.Restrict(suffix, suffix.Interval())
			remaining = 0
		}
	}
	return out
}

// positionSplit narrows every node in path down to exactly its subnode's
// restricted interval, splitting off any portion of the underlying node
// that lies outside [Sub.First, Sub.Last].
func positionSplit(buffers *Buffers, path []graph.Subnode) []graph.Subnode {
	out := make([]graph.Subnode, len(path))
	for i, sn := range path {
		out[i] = graph.Restrict(narrowToInterval(buffers, sn.Node, sn.Sub), sn.Sub)
	}
	return out
}

// narrowToInterval splits n, if necessary, so that its own interval equals
// exactly want.
func narrowToInterval(buffers *Buffers, n *graph.PathNode, want pos.Interval) *graph.PathNode {
	cur := n
	if cur.FirstStart() < want.First {
		_, right := splitAtStartInBuffer(buffers, cur, want.First)
		cur = right
	}
	if cur.FirstEnd() > want.Last {
		left, _ := splitAtStartInBuffer(buffers, cur, want.Last+1)
		cur = left
	}
	return cur
}

// lengthAlign splits nodes on both paths at the union of cumulative-length
// breakpoints so that, over the shorter path's total length, the two paths
// have a matching node-by-node length sequence, ready for a 1:1 merge.
// Total lengths are not changed: a longer path keeps its extra tail, which
// mergePaths leaves unmerged (spec
// §4.8 step 3; concretely exercised by scenario S5: a length-3 target node
// splits into lengths 1 and 2 to match a two-node source path).
func lengthAlign(buffers *Buffers, source, target []graph.Subnode) ([]graph.Subnode, []graph.Subnode) {
	all := unionBreakpoints(cumulativeBreakpoints(source), cumulativeBreakpoints(target))
	return alignBreakpointsAt(buffers, source, all), alignBreakpointsAt(buffers, target, all)
}

func cumulativeBreakpoints(path []graph.Subnode) []int {
	breaks := make([]int, 0, len(path))
	total := 0
	for _, sn := range path {
		total += sn.Node.Length()
		breaks = append(breaks, total)
	}
	return breaks
}

func unionBreakpoints(a, b []int) []int {
	set := make(map[int]bool, len(a)+len(b))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		set[v] = true
	}
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	// simple insertion sort: breakpoint counts are small (bounded by
	// maxPathCollapseLength).
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// alignBreakpointsAt splits path's nodes so that every breakpoint in
// allBreaks strictly inside path's total length becomes a node boundary.
// allBreaks is sorted ascending; path lists are short (bounded by
// maxPathCollapseLength), so the O(n^2) rescan per breakpoint is not worth
// optimizing away.
func alignBreakpointsAt(buffers *Buffers, path []graph.Subnode, allBreaks []int) []graph.Subnode {
	out := append([]graph.Subnode(nil), path...)
	totalLength := func() int {
		t := 0
		for _, sn := range out {
			t += sn.Node.Length()
		}
		return t
	}
	for _, bp := range allBreaks {
		if bp <= 0 || bp >= totalLength() {
			continue
		}
		running, splitIdx, isBoundary := 0, -1, false
		for i, sn := range out {
			if running == bp {
				isBoundary = true
				break
			}
			nodeLen := sn.Node.Length()
			if running+nodeLen > bp {
				splitIdx = i
				break
			}
			running += nodeLen
		}
		if isBoundary || splitIdx < 0 {
			continue
		}
		offset := bp - running
		prefix, suffix := splitAtLengthInBuffer(buffers, out[splitIdx].Node, offset)
		newOut := make([]graph.Subnode, 0, len(out)+1)
		newOut = append(newOut, out[:splitIdx]...)
		newOut = append(newOut, graph.Restrict(prefix, prefix.Interval()))
		newOut = append(newOut, graph.Restrict(suffix, suffix.Interval()))
		newOut = append(newOut, out[splitIdx+1:]...)
		out = newOut
	}
	return out
}

func mergeOne(buffers *Buffers, source, target *graph.PathNode) {
	buffers.Remove(source)
	if err := target.Merge(source); err != nil {
		log.Fatalf("collapse: merge invariant violated: %v", err)
	}
}
