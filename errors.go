// Package seqstream is a small data-processing core:
// memoizing lazy sequences with an algebra of combinators,
// and a streaming Base64 encoder that pulls its input from any byte source.
package seqstream

import "go.llib.dev/frameless/pkg/errorkit"

const (
	// ErrOutOfRange is raised when an index is past the length,
	// a generator is asked for a value it doesn't have,
	// or an interval is reversed or beyond its source.
	ErrOutOfRange errorkit.Error = "ErrOutOfRange"
	// ErrPrecondition is raised when a constructor receives arguments that can't be satisfied,
	// like a recurrence with fewer seeds than its arity.
	ErrPrecondition errorkit.Error = "ErrPrecondition"
	// ErrEndOfStream is raised by Read on an exhausted stream.
	ErrEndOfStream errorkit.Error = "ErrEndOfStream"
	// ErrUnsupported is raised for operations the receiver can't do, like Seek on a forward-only stream.
	ErrUnsupported errorkit.Error = "ErrUnsupported"
	// ErrIO wraps failures of external resources such as files.
	ErrIO errorkit.Error = "ErrIO"
)
