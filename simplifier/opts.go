package simplifier

import "github.com/grailbio/pathcollapse/internal/errs"

// Opts are the simplifier's construction parameters (spec §4.5).
type Opts struct {
	// K is the k-mer length of every path-node in the input stream.
	K int
	// MaxPathCollapseLength bounds the length, in k-mers, of either
	// candidate path considered for a collapse.
	MaxPathCollapseLength int
	// MaxBasesMismatch is the maximum tolerated base mismatch count between
	// two candidate paths.
	MaxBasesMismatch int
	// BubblesAndLeavesOnly, when true, accepts a common-child bubble only if
	// every node of its lighter body has exactly one predecessor and one
	// successor; when false, that check is skipped. In both modes only the
	// common-child bubble and leaf topologies are accepted; other pairs of
	// similar paths are not collapsed.
	BubblesAndLeavesOnly bool
}

// DefaultOpts mirrors fusion/opts.go's DefaultOpts: conservative defaults
// suitable for short-read sequencing-error repair.
var DefaultOpts = Opts{
	K:                     21,
	MaxPathCollapseLength: 8,
	MaxBasesMismatch:      2,
	BubblesAndLeavesOnly:  true,
}

// Validate reports a MalformedInput-kind error if opts describes a
// construction that cannot produce a coherent process/emit horizon.
func (o Opts) Validate() error {
	if o.K <= 0 {
		return errs.New(errs.MalformedInput, "Opts.Validate", "K must be positive")
	}
	if o.MaxPathCollapseLength < 1 {
		return errs.New(errs.MalformedInput, "Opts.Validate", "MaxPathCollapseLength must be >= 1")
	}
	if o.MaxBasesMismatch < 0 {
		return errs.New(errs.MalformedInput, "Opts.Validate", "MaxBasesMismatch must be >= 0")
	}
	return nil
}
