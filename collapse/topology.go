package collapse

import (
	"github.com/grailbio/pathcollapse/graph"
)

// tryCollapse implements spec §4.7: given two cursors whose tips overlap
// and whose base-mismatch count is within budget, test the two accepted
// topologies (common-child bubble, leaf collapse) and, on acceptance,
// return the parallel source/target subnode lists merge-paths needs.
func tryCollapse(opts Opts, a, b *graph.Cursor, forward bool) (candidate, bool) {
	if c, ok := tryCommonChildBubble(opts, a, b, forward); ok {
		return c, true
	}
	return tryLeafCollapse(opts, a, b, forward)
}

// tryCommonChildBubble accepts when both cursors' tips are the same
// underlying path-node, both paths have equal length, and no path-node
// repeats across the two candidate bodies (the shared tip excluded).
func tryCommonChildBubble(opts Opts, a, b *graph.Cursor, forward bool) (candidate, bool) {
	if a.Tip().Node != b.Tip().Node {
		return candidate{}, false
	}
	if a.PathLength() != b.PathLength() {
		return candidate{}, false
	}
	pathA := a.CurrentPath()
	pathB := b.CurrentPath()
	// Exclude the shared tip before checking for repeats: the tip is
	// expected to coincide by definition of this topology, so only the
	// bodies leading up to it need to be repeat-free.
	bodyA := pathA[:len(pathA)-1]
	bodyB := pathB[:len(pathB)-1]
	if len(bodyA) == 0 || len(bodyB) == 0 {
		return candidate{}, false
	}
	if pathNodeRepeated(bodyA, bodyB) {
		logRejected("common-child bubble: repeated path-node")
		return candidate{}, false
	}
	bodyA, bodyB, ok := restrictToCommonInterval(bodyA, bodyB)
	if !ok {
		logRejected("common-child bubble: no common interval")
		return candidate{}, false
	}
	if opts.BubblesAndLeavesOnly && !isPureBubbleBody(lighterBody(bodyA, bodyB)) {
		logRejected("common-child bubble: not a pure bubble body")
		return candidate{}, false
	}
	// The lighter body is the source; ties break deterministically on the
	// body's leading node rather than by address (spec §9, "Tie-breaking").
	var source, target []graph.Subnode
	wa, wb := weightOf(bodyA), weightOf(bodyB)
	switch {
	case wa < wb:
		source, target = bodyA, bodyB
	case wb < wa:
		source, target = bodyB, bodyA
	case graph.Less(bodyA[0].Node, bodyB[0].Node):
		source, target = bodyA, bodyB
	default:
		source, target = bodyB, bodyA
	}
	return candidate{
		sourcePath: source,
		targetPath: target,
		forward:    forward,
		topology:   TopologyBubble,
	}, true
}

// tryLeafCollapse accepts when one cursor's tip is a terminal leaf (no
// further children within the intersected interval) whose path length and
// weight are each no greater than the other cursor's.
func tryLeafCollapse(opts Opts, a, b *graph.Cursor, forward bool) (candidate, bool) {
	leafIsA := isTerminalLeaf(a)
	leafIsB := isTerminalLeaf(b)
	if !leafIsA && !leafIsB {
		return candidate{}, false
	}

	var leaf, other *graph.Cursor
	switch {
	case leafIsA && (!leafIsB || a.PathLength() <= b.PathLength()):
		leaf, other = a, b
	case leafIsB:
		leaf, other = b, a
	default:
		return candidate{}, false
	}

	if leaf.PathLength() > other.PathLength() || leaf.PathWeight() > other.PathWeight() {
		return candidate{}, false
	}
	sourcePath := leaf.CurrentPath()
	targetPath := other.CurrentPath()
	if pathNodeRepeated(sourcePath, targetPath) {
		logRejected("leaf collapse: repeated path-node")
		return candidate{}, false
	}
	sourcePath, targetPath, ok := restrictToCommonInterval(sourcePath, targetPath)
	if !ok {
		logRejected("leaf collapse: no common interval")
		return candidate{}, false
	}

	sourceSkip := 0
	targetSkip := 0
	if !forward {
		targetSkip = other.PathLength() - leaf.PathLength()
	}
	return candidate{
		sourcePath:      sourcePath,
		targetPath:      targetPath,
		sourceSkipKmers: sourceSkip,
		targetSkipKmers: targetSkip,
		forward:         forward,
		topology:        TopologyLeaf,
	}, true
}

// isTerminalLeaf reports whether c's tip has no further children in the
// cursor's traversal direction, within the currently intersected interval.
func isTerminalLeaf(c *graph.Cursor) bool {
	tip := c.Tip()
	var children []graph.Subnode
	if c.Forward() {
		children = tip.Next()
	} else {
		children = tip.Prev()
	}
	return len(children) == 0
}

func lighterBody(a, b []graph.Subnode) []graph.Subnode {
	if weightOf(a) <= weightOf(b) {
		return a
	}
	return b
}

func weightOf(path []graph.Subnode) int64 {
	var total int64
	for _, sn := range path {
		total += sn.Weight()
	}
	return total
}

// isPureBubbleBody reports whether every subnode in body has exactly one
// predecessor and one successor (spec §4.7's bubblesAndLeavesOnly gate).
func isPureBubbleBody(body []graph.Subnode) bool {
	for _, sn := range body {
		if len(sn.Node.Predecessors()) != 1 || len(sn.Node.Successors()) != 1 {
			return false
		}
	}
	return true
}

// restrictToCommonInterval narrows each corresponding pair of subnodes in a
// and b down to the interval common to both (spec §4.7: candidate bodies
// must be "restricted to the intervals common to both bodies"), since each
// cursor's Sub was computed independently against only its own lineage, and
// corresponding positions can legitimately overlap without being equal (the
// shared tip of a common-child bubble is the most direct case: both cursors
// reach the same node, but by different frontiers).
//
// Positions beyond the shorter body's length are left untouched: once the
// bodies diverge in subnode count, lengthAlign is what reconciles the
// differing granularity, not a positional clip here.
func restrictToCommonInterval(a, b []graph.Subnode) (outA, outB []graph.Subnode, ok bool) {
	outA = append([]graph.Subnode(nil), a...)
	outB = append([]graph.Subnode(nil), b...)
	n := len(outA)
	if len(outB) < n {
		n = len(outB)
	}
	for i := 0; i < n; i++ {
		common, overlaps := outA[i].Sub.Intersect(outB[i].Sub)
		if !overlaps {
			return nil, nil, false
		}
		outA[i] = graph.Restrict(outA[i].Node, common)
		outB[i] = graph.Restrict(outB[i].Node, common)
	}
	return outA, outB, true
}
