// Package simplifier implements the streaming scheduler described in spec
// §4.5/§4.9: it pulls path-nodes from an upstream iterator, maintains the
// process horizon and emit threshold, and drives package collapse's
// collapse attempts as nodes settle. Grounded on the windowed-scan shape
// of markduplicates's duplicateIndex and pileup's scanning loop, both of
// which separate "pull more input" from "emit a settled result" the same
// way Next does here.
package simplifier

import (
	"context"

	"github.com/grailbio/base/log"
	"github.com/grailbio/pathcollapse/buffer"
	"github.com/grailbio/pathcollapse/collapse"
	"github.com/grailbio/pathcollapse/graph"
	"github.com/grailbio/pathcollapse/pos"
)

// Iterator is the upstream (and downstream) node stream contract of spec
// §6: path-nodes delivered in non-decreasing firstStart order. Next
// blocks if upstream I/O is needed; ok is false once the stream is
// exhausted.
type Iterator interface {
	Next(ctx context.Context) (n *graph.PathNode, ok bool, err error)
}

// Simplifier is the streaming driver. It is not safe for concurrent use
// (spec §5: single-threaded core).
type Simplifier struct {
	opts     Opts
	upstream Iterator
	buffers  *buffer.Pair
	stats    Stats

	peeked    *graph.PathNode
	exhausted bool

	inputPosition pos.Type
	maxNodeWidth  int
	maxNodeLength int
}

// New constructs a Simplifier over upstream. It returns a MalformedInput
// error if opts is invalid.
func New(upstream Iterator, opts Opts) (*Simplifier, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Simplifier{
		opts:     opts,
		upstream: upstream,
		buffers:  buffer.NewPair(),
	}, nil
}

// Run is equivalent to New; it does not use ctx. The context that reaches
// the simplifier's sole blocking point, the upstream pull, is the one
// passed to each Next call (spec §5 "Suspension/blocking").
func Run(ctx context.Context, upstream Iterator, opts Opts) (*Simplifier, error) {
	return New(upstream, opts)
}

// Stats returns a snapshot of the driver's running counters.
func (s *Simplifier) Stats() Stats { return s.stats }

func (s *Simplifier) collapseOpts() collapse.Opts {
	return collapse.Opts{
		K:                     s.opts.K,
		MaxPathCollapseLength: s.opts.MaxPathCollapseLength,
		MaxBasesMismatch:      s.opts.MaxBasesMismatch,
		BubblesAndLeavesOnly:  s.opts.BubblesAndLeavesOnly,
	}
}

// processOffset/emitOffset/processHorizon/emitThreshold implement spec
// §4.5's horizon arithmetic exactly.
func (s *Simplifier) processOffset() pos.Type {
	return pos.Type(s.opts.MaxPathCollapseLength + 1)
}

func (s *Simplifier) emitOffset() pos.Type {
	return s.processOffset() + pos.Type(2*s.maxNodeLength+2*s.maxNodeWidth+s.opts.MaxPathCollapseLength+2)
}

func (s *Simplifier) processHorizon() pos.Type {
	if s.exhausted {
		return pos.Max
	}
	return s.inputPosition - s.processOffset()
}

func (s *Simplifier) emitThreshold() pos.Type {
	if s.exhausted {
		return pos.Max
	}
	return s.inputPosition - s.emitOffset()
}

// Next implements spec §4.5's "next-item semantics": drive the scheduling
// loop until one node is ready to emit, or the stream (and every buffer)
// is empty.
func (s *Simplifier) Next(ctx context.Context) (*graph.PathNode, bool, error) {
	for {
		if err := s.advance(ctx); err != nil {
			return nil, false, err
		}
		if min, ok := s.buffers.Processed.Min(); ok && (s.exhausted || min.FirstStart() <= s.emitThreshold()) {
			n, _ := s.buffers.Processed.PopMin()
			n.SetLocation(graph.LocationNone)
			s.stats.NodesEmitted++
			return n, true, nil
		}
		if s.exhausted && s.buffers.Len() == 0 {
			return nil, false, nil
		}
	}
}

// advance is one round of spec §4.5's driver loop body: pull more input
// (if any remains) into unprocessed, then run collapse steps until none
// does further work.
func (s *Simplifier) advance(ctx context.Context) error {
	if !s.exhausted {
		if err := s.drain(ctx); err != nil {
			return err
		}
	}
	for s.collapseStep() {
	}
	return nil
}

// peekUpstream ensures s.peeked holds the next upstream node (or that
// s.exhausted is set), without consuming more than one node.
func (s *Simplifier) peekUpstream(ctx context.Context) error {
	if s.peeked != nil || s.exhausted {
		return nil
	}
	n, ok, err := s.upstream.Next(ctx)
	if err != nil {
		return err
	}
	if !ok {
		s.exhausted = true
		s.inputPosition = pos.Max
		return nil
	}
	s.peeked = n
	return nil
}

// drain implements spec §4.5 step (a)+(b): peek upstream once to fix
// inputPosition for this round, then pull every node sharing that exact
// firstStart into unprocessed (ties), updating the running maxima that
// feed processOffset/emitOffset.
func (s *Simplifier) drain(ctx context.Context) error {
	if err := s.peekUpstream(ctx); err != nil {
		return err
	}
	if s.exhausted {
		return nil
	}
	frontier := s.peeked.FirstStart()
	s.inputPosition = frontier
	for s.peeked != nil && s.peeked.FirstStart() <= frontier {
		n := s.peeked
		s.peeked = nil
		s.buffers.InsertUnprocessed(n)
		if w := n.Width(); w > s.maxNodeWidth {
			s.maxNodeWidth = w
		}
		if l := n.Length(); l > s.maxNodeLength {
			s.maxNodeLength = l
		}
		if err := s.peekUpstream(ctx); err != nil {
			return err
		}
	}
	return nil
}

// collapseStep implements spec §4.5's "Collapse step", one node at a
// time: if unprocessed's smallest lastEnd is below the process horizon,
// move that node to processed and attempt a collapse centred on it.
// Returns whether it did so, so the caller can repeat while there is
// still settled work available.
func (s *Simplifier) collapseStep() bool {
	min, ok := s.buffers.Unprocessed.Min()
	if !ok || min.LastEnd() >= s.processHorizon() {
		return false
	}
	n, _ := s.buffers.Unprocessed.PopMin()
	n.SetLocation(graph.LocationNone)
	s.buffers.InsertProcessed(n)

	s.stats.CollapsesAttempted++
	if ok, topology := collapse.AttemptAroundNode(s.collapseOpts(), s.buffers, n); ok {
		s.stats.CollapsesAccepted++
		switch topology {
		case collapse.TopologyBubble:
			s.stats.BubblesCollapsed++
		case collapse.TopologyLeaf:
			s.stats.LeavesCollapsed++
		}
	}
	if u := s.buffers.Unprocessed.Len(); u > s.stats.MaxUnprocessedSize {
		s.stats.MaxUnprocessedSize = u
	}
	if p := s.buffers.Processed.Len(); p > s.stats.MaxProcessedSize {
		s.stats.MaxProcessedSize = p
	}
	log.Debug.Printf("collapse step: node %d settled, unprocessed=%d processed=%d",
		n.ID(), s.buffers.Unprocessed.Len(), s.buffers.Processed.Len())
	return true
}
