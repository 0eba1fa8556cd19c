package cell

import (
	"github.com/cockroachdb/errors"

	"github.com/kolkov/debugcell/internal/cell/report"
)

// Sentinel errors returned (wrapped in a *BorrowError) by the Try* and
// direct-access operations. Match with errors.Is.
var (
	// ErrAlreadyBorrowed is returned when the exclusive borrow (or direct
	// access) is requested while any borrow is outstanding.
	ErrAlreadyBorrowed = errors.New("cell is already borrowed")

	// ErrAlreadyMutablyBorrowed is returned when a shared borrow is
	// requested while the exclusive borrow is outstanding.
	ErrAlreadyMutablyBorrowed = errors.New("cell is already mutably borrowed")
)

// BorrowError is the failure of a Try* operation. It wraps one of the two
// sentinel errors and, in debug builds, carries the full snapshot of the
// conflicting borrows.
type BorrowError struct {
	cause     error
	violation *report.Violation // nil in release builds
}

// Error returns the diagnostic text. In debug builds this is multi-line: the
// kind message followed by every active conflicting borrow's kind and call
// site, oldest first, and the rejected attempt's site. In release builds it
// is the kind message alone.
func (e *BorrowError) Error() string {
	if e.violation == nil {
		return e.cause.Error()
	}
	return e.cause.Error() + "\n" + e.violation.Details()
}

// Unwrap exposes the sentinel for errors.Is.
func (e *BorrowError) Unwrap() error {
	return e.cause
}
