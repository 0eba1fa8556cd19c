// Package cell provides a single-goroutine, dynamically-checked mutable cell
// that remembers where every live borrow was taken.
//
// A Cell[T] owns a value and hands out either any number of shared
// (read-only) views or exactly one exclusive (mutable) view at a time. The
// rule is enforced at run time: a conflicting borrow either fails (the Try*
// variants) or is fatal (Borrow/BorrowMut), because a borrow-discipline
// violation is a programming bug, not a recoverable condition.
//
// What sets this cell apart from a plain run-time-checked cell is the
// diagnostic: in debug builds every live borrow's call site is recorded, and
// a violation reports exactly where each conflicting borrow was created.
//
// # Quick Start
//
//	c := cell.New(3)
//
//	r := c.Borrow()
//	fmt.Println(r.Value()) // 3
//	r.Release()
//
//	m := c.BorrowMut()
//	m.Set(4)
//	m.Release()
//
// A violation produces a report like:
//
//	==================
//	WARNING: BORROW VIOLATION
//	cell is already borrowed
//	current active borrows:
//	  0 - shared /path/to/main.go:14 main.main()
//	  1 - shared /path/to/main.go:15 main.main()
//	rejected: exclusive borrow at /path/to/main.go:17 main.main()
//	==================
//
// # Handles
//
// Borrow state is returned exclusively by releasing the handle, idiomatically
//
//	r := c.Borrow()
//	defer r.Release()
//
// Handles are pointers and must not be duplicated; each one corresponds to
// exactly one ledger entry. Releasing twice or using a handle after release
// panics.
//
// For recoverable flows use the Try* variants:
//
//	m, err := c.TryBorrowMut()
//	if err != nil {
//		// errors.Is(err, cell.ErrAlreadyBorrowed) == true;
//		// in debug builds err lists every conflicting borrow's call site.
//	}
//
// # Build Modes
//
// Debug is the default configuration. Building with the "debugcell_release"
// tag compiles the ledger down to a zero-size no-op: borrowing semantics are
// identical, but diagnostics carry no location data and no bookkeeping runs.
//
// # Concurrency
//
// A Cell is not safe for concurrent use and carries no synchronization. It
// may be handed between goroutines while no borrow is live, but its borrows
// must never span goroutines. Debug builds pin a cell to the goroutine
// holding its borrows and fail fast on cross-goroutine use; release builds
// do not check. Cells and handles contain a noCopy marker, so accidental
// copies are caught by "go vet".
package cell
