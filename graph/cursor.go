package graph

// frame is one level of a Cursor's DFS stack: the subnode occupying that
// level, the cumulative path length/weight up to and including it, and the
// (lazily materialised, then indexed) set of candidate children.
type frame struct {
	sub       Subnode
	cumLen    int
	cumWeight int64
	children  []Subnode
	childIdx  int
}

// Cursor walks the path-tree rooted at a starting subnode, expanding either
// forward (via Subnode.Next) or backward (via Subnode.Prev), bounded so
// that PathLength never exceeds a caller-supplied maximum (spec §4.4). It
// is single-threaded and holds no locks; callers serialize access.
type Cursor struct {
	forward bool
	maxLen  int
	stack   []frame
}

// NewCursor creates a cursor rooted at root, expanding forward if forward
// is true and backward otherwise, never extending a path beyond maxLen
// k-mers.
func NewCursor(root Subnode, forward bool, maxLen int) *Cursor {
	c := &Cursor{forward: forward, maxLen: maxLen}
	c.stack = []frame{{sub: root, cumLen: root.Length(), cumWeight: root.Weight()}}
	return c
}

// PathLength is the total chain length (in k-mers) of the path from the
// root to the cursor's current tip.
func (c *Cursor) PathLength() int {
	return c.stack[len(c.stack)-1].cumLen
}

// PathWeight is the sum of Weight() over every subnode on the current
// path, root to tip.
func (c *Cursor) PathWeight() int64 {
	return c.stack[len(c.stack)-1].cumWeight
}

// CurrentPath returns the subnodes from root to tip, in order.
func (c *Cursor) CurrentPath() []Subnode {
	out := make([]Subnode, len(c.stack))
	for i, f := range c.stack {
		out[i] = f.sub
	}
	return out
}

// Tip is the subnode currently at the bottom of the DFS stack.
func (c *Cursor) Tip() Subnode {
	return c.stack[len(c.stack)-1].sub
}

// Depth is the number of subnodes on the current path.
func (c *Cursor) Depth() int {
	return len(c.stack)
}

// Forward reports the cursor's traversal direction, set at construction.
func (c *Cursor) Forward() bool {
	return c.forward
}

// children computes (and caches) the tip's candidate children, filtering
// out any that would push PathLength past maxLen and any that would
// revisit a path-node already on the current path (spec §9: "cycles in
// the underlying graph must not loop the cursor forever").
func (c *Cursor) children() []Subnode {
	top := &c.stack[len(c.stack)-1]
	if top.children != nil || top.childIdx > 0 {
		return top.children
	}
	var raw []Subnode
	if c.forward {
		raw = top.sub.Next()
	} else {
		raw = top.sub.Prev()
	}
	out := top.children[:0]
	for _, child := range raw {
		if top.cumLen+child.Length() > c.maxLen {
			continue
		}
		if c.pathNodeRepeated(child.Node) {
			continue
		}
		out = append(out, child)
	}
	top.children = out
	return out
}

// pathNodeRepeated reports whether node already occupies some frame on the
// current path.
func (c *Cursor) pathNodeRepeated(node *PathNode) bool {
	for _, f := range c.stack {
		if f.sub.Node == node {
			return true
		}
	}
	return false
}

// DFSResetChildTraversal rewinds the tip's child cursor to its first
// candidate, so a caller that has finished exploring one child's subtree
// can move to the next without losing the already-computed child list.
func (c *Cursor) DFSResetChildTraversal() {
	c.stack[len(c.stack)-1].childIdx = 0
}

// DFSNextChild advances into the tip's next unvisited child, pushing a new
// frame and returning true, or returns false once every child has been
// visited (leaving the cursor positioned at the tip, ready for DFSPop).
func (c *Cursor) DFSNextChild() bool {
	kids := c.children()
	top := &c.stack[len(c.stack)-1]
	if top.childIdx >= len(kids) {
		return false
	}
	child := kids[top.childIdx]
	top.childIdx++
	c.stack = append(c.stack, frame{
		sub:       child,
		cumLen:    top.cumLen + child.Length(),
		cumWeight: top.cumWeight + child.Weight(),
	})
	return true
}

// DFSPop discards the current tip and returns the cursor to its parent. It
// is a no-op, returning false, at the root frame.
func (c *Cursor) DFSPop() bool {
	if len(c.stack) <= 1 {
		return false
	}
	c.stack = c.stack[:len(c.stack)-1]
	return true
}

// FirstTerminalLeaf walks depth-first from the current tip, always
// choosing the lowest-ordered child (graph.Less on the child's node, spec
// §9 tie-breaking), until it reaches a subnode with no further children or
// the length bound is reached, returning that terminal subnode and its
// depth relative to the starting tip.
func (c *Cursor) FirstTerminalLeaf() (leaf Subnode, depth int) {
	cur := c.Tip()
	curLen := c.PathLength()
	visited := map[*PathNode]bool{cur.Node: true}
	for {
		var raw []Subnode
		if c.forward {
			raw = cur.Next()
		} else {
			raw = cur.Prev()
		}
		var best Subnode
		found := false
		for _, cand := range raw {
			if visited[cand.Node] || curLen+cand.Length() > c.maxLen {
				continue
			}
			if !found || Less(cand.Node, best.Node) {
				best = cand
				found = true
			}
		}
		if !found {
			return cur, depth
		}
		cur = best
		curLen += best.Length()
		visited[cur.Node] = true
		depth++
	}
}
