package cell

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/kolkov/debugcell/internal/cell/borrowflag"
	"github.com/kolkov/debugcell/internal/cell/buildmode"
	"github.com/kolkov/debugcell/internal/cell/callsite"
	"github.com/kolkov/debugcell/internal/cell/goroutine"
	"github.com/kolkov/debugcell/internal/cell/ledger"
	"github.com/kolkov/debugcell/internal/cell/report"
)

// noCopy triggers the "go vet" copylocks check when a Cell, Ref or RefMut is
// copied by value. A copied cell would desynchronize the flag word from the
// ledger and from any outstanding handles.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Cell owns a value of type T and mediates all access to it through borrow
// handles. Create one with New; the zero Cell holds the zero value of T and
// is also valid.
//
// A Cell must not be used concurrently. See the package documentation for
// the exact contract and how debug builds enforce it.
type Cell[T any] struct {
	noCopy noCopy //nolint:unused // present for go vet copylocks

	value  T
	flag   borrowflag.Flag
	ledger ledger.Ledger

	// owner is the goroutine holding this cell's live borrows. Re-pinned
	// whenever an operation finds the cell Unused, so an idle cell may move
	// between goroutines. Debug builds only; stays 0 in release builds.
	owner int64
}

// New creates a Cell holding value, in the Unused state. Always succeeds.
func New[T any](value T) *Cell[T] {
	return &Cell[T]{value: value}
}

// TryBorrow attempts to take a shared (read-only) borrow.
//
// Fails with ErrAlreadyMutablyBorrowed while the exclusive borrow is
// outstanding; in debug builds the error carries the call site at which that
// borrow was taken. Otherwise the live-reader count is incremented, the call
// site is recorded (debug builds), and the new Ref is returned.
func (c *Cell[T]) TryBorrow() (*Ref[T], error) {
	c.checkOwner()
	if !c.flag.TryShared() {
		return nil, c.borrowError(ledger.Shared, ErrAlreadyMutablyBorrowed)
	}
	var t ledger.Ticket
	if buildmode.Tracking {
		t = c.ledger.Add(ledger.Shared, callsite.Capture(1))
	}
	return &Ref[T]{cell: c, ticket: t}, nil
}

// Borrow takes a shared borrow, escalating failure to a fatal diagnostic.
//
// A failed Borrow panics with the full violation report: in debug builds it
// enumerates every active borrow's kind and call site; in release builds it
// states only that the cell is mutably borrowed.
func (c *Cell[T]) Borrow() *Ref[T] {
	r, err := c.TryBorrow()
	if err != nil {
		fatal(err)
	}
	return r
}

// TryBorrowMut attempts to take the exclusive (mutable) borrow.
//
// Fails with ErrAlreadyBorrowed while any borrow is outstanding; in debug
// builds the error carries the call sites of all of them (there may be
// several shared borrows). Otherwise the flag moves to the Writing state and
// the new RefMut is returned.
func (c *Cell[T]) TryBorrowMut() (*RefMut[T], error) {
	c.checkOwner()
	if !c.flag.TryExclusive() {
		return nil, c.borrowError(ledger.Exclusive, ErrAlreadyBorrowed)
	}
	var t ledger.Ticket
	if buildmode.Tracking {
		t = c.ledger.Add(ledger.Exclusive, callsite.Capture(1))
	}
	return &RefMut[T]{cell: c, ticket: t}, nil
}

// BorrowMut takes the exclusive borrow, escalating failure to a fatal
// diagnostic with the same contract as Borrow, generalized to report all
// conflicting borrows.
func (c *Cell[T]) BorrowMut() *RefMut[T] {
	m, err := c.TryBorrowMut()
	if err != nil {
		fatal(err)
	}
	return m
}

// State reports whether the cell is Unused, Reading or Writing.
func (c *Cell[T]) State() BorrowState {
	return stateOf(c.flag.State())
}

// Readers returns the number of live shared borrows (0 when Unused or
// Writing).
func (c *Cell[T]) Readers() int {
	return c.flag.Readers()
}

// Replace swaps in a new value and returns the old one, without going
// through a borrow handle.
//
// Only valid in the Unused state: a live Ref or RefMut expects the value to
// stay stable beneath it. Fails with ErrAlreadyBorrowed otherwise.
func (c *Cell[T]) Replace(value T) (T, error) {
	c.checkOwner()
	if c.flag.State() != borrowflag.Unused {
		var zero T
		return zero, c.borrowError(ledger.Exclusive, ErrAlreadyBorrowed)
	}
	old := c.value
	c.value = value
	return old, nil
}

// Take extracts the current value, leaving the zero value of T behind.
// Same precondition as Replace.
func (c *Cell[T]) Take() (T, error) {
	var zero T
	return c.Replace(zero)
}

// Clone returns a fresh unborrowed cell holding a shallow copy of the
// current value. It reads through a shared borrow, so it fails with
// ErrAlreadyMutablyBorrowed while the exclusive borrow is live.
func (c *Cell[T]) Clone() (*Cell[T], error) {
	r, err := c.TryBorrow()
	if err != nil {
		return nil, err
	}
	defer r.Release()
	return New(r.Value()), nil
}

// Equal reports whether two cells hold equal values, reading both through
// shared borrows. Like Borrow, it is fatal if either cell is mutably
// borrowed.
func Equal[T comparable](a, b *Cell[T]) bool {
	ra := a.Borrow()
	defer ra.Release()
	rb := b.Borrow()
	defer rb.Release()
	return ra.Value() == rb.Value()
}

// borrowError snapshots the conflicting borrows into a *BorrowError. In
// release builds the snapshot is skipped entirely and only the sentinel
// survives.
func (c *Cell[T]) borrowError(attempt ledger.Kind, cause error) *BorrowError {
	e := &BorrowError{cause: cause}
	if buildmode.Tracking {
		e.violation = &report.Violation{
			Attempt:     attempt,
			AttemptSite: callsite.Capture(2),
			Active:      c.ledger.Snapshot(),
		}
	}
	return e
}

// checkOwner enforces the single-goroutine contract in debug builds.
//
// The pin follows the borrows: whenever the cell is Unused it is re-pinned
// to the current goroutine, so handing an idle cell to another goroutine is
// legal. Touching a cell whose borrows are held elsewhere is fatal, because
// the flag and ledger carry no synchronization and the next step would be a
// data race.
func (c *Cell[T]) checkOwner() {
	if !buildmode.Tracking {
		return
	}
	if c.flag.State() == borrowflag.Unused {
		c.owner = goroutine.ID()
		return
	}
	if id := goroutine.ID(); id != c.owner {
		panic(fmt.Sprintf(
			"debugcell: cell with live borrows used from goroutine %d while its borrows are held by goroutine %d; Cell is not safe for concurrent use",
			id, c.owner))
	}
}

// fatal is the escalation path of Borrow and BorrowMut: the violation is a
// programming bug, so it terminates the program (via panic) with the full
// report as the panic value.
func fatal(err error) {
	var be *BorrowError
	if errors.As(err, &be) && be.violation != nil {
		panic(be.violation.String())
	}
	panic(err.Error())
}
