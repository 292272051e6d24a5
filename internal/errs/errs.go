// Package errs defines the error vocabulary shared by every pathcollapse
// package: the three fatal error kinds described for the simplifier
// (malformed input, broken internal invariants, and resource exhaustion).
package errs

import (
	"fmt"

	baseerrors "github.com/grailbio/base/errors"
	"github.com/pkg/errors"
)

// Kind classifies a pathcollapse error. None of these are recovered
// internally; the engine does not retry.
type Kind int

const (
	// MalformedInput means the upstream node stream violated ordering, named
	// an unknown node in an edge, or reported an internally inconsistent
	// k-mer chain.
	MalformedInput Kind = iota
	// InvariantViolation means a split/merge post-condition failed: a bug in
	// this package, not in the caller's input.
	InvariantViolation
	// ResourceExhaustion means an operation ran out of memory mid-split.
	ResourceExhaustion
)

func (k Kind) String() string {
	switch k {
	case MalformedInput:
		return "malformed input"
	case InvariantViolation:
		return "invariant violation"
	case ResourceExhaustion:
		return "resource exhaustion"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by pathcollapse packages.
type Error struct {
	Kind Kind
	Op   string
	err  error
}

func (e *Error) Error() string {
	if e.err == nil {
		return fmt.Sprintf("pathcollapse: %s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("pathcollapse: %s: %s: %v", e.Kind, e.Op, e.err)
}

// Unwrap allows errors.Is/As to see through to the underlying cause.
func (e *Error) Unwrap() error { return e.err }

// New creates an Error of the given kind for operation op, composing any
// extra context the same way base/errors.E composes a message from mixed
// string/error arguments (see encoding/fasta's use of errors.E in the
// teacher repo).
func New(kind Kind, op string, args ...interface{}) error {
	all := append([]interface{}{op}, args...)
	return &Error{Kind: kind, Op: op, err: baseerrors.E(all...)}
}

// Wrap attaches op/kind context to an existing error via pkg/errors, the
// same annotation style encoding/fasta/index.go layers under base/errors.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, err: errors.Wrap(err, op)}
}

// Is reports whether err is a pathcollapse Error of the given kind.
func Is(kind Kind, err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
