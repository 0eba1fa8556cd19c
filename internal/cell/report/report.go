// Package report formats borrow-violation diagnostics.
//
// A Violation is a pure description of one rejected borrow attempt: what was
// attempted, where, and the ledger snapshot of every borrow that was live at
// that moment. Formatting never touches cell state; the snapshot is taken by
// the cell before the report is built.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/kolkov/debugcell/internal/cell/callsite"
	"github.com/kolkov/debugcell/internal/cell/ledger"
)

// Violation describes one rejected borrow attempt together with the borrows
// that caused the rejection.
type Violation struct {
	// Attempt is the kind of borrow that was rejected.
	Attempt ledger.Kind

	// AttemptSite is where the rejected attempt was made. May be the zero
	// Site when no location was captured.
	AttemptSite callsite.Site

	// Active is the ledger snapshot at rejection time, oldest first.
	// A rejected shared borrow conflicts with exactly one exclusive record;
	// a rejected exclusive borrow may conflict with many shared records.
	Active []ledger.Record
}

// Headline returns the one-line summary of the violation, phrased from the
// attempt's point of view: a shared attempt is blocked by the mutable
// borrow, an exclusive attempt by any borrow at all.
func (v *Violation) Headline() string {
	if v.Attempt == ledger.Shared {
		return "cell is already mutably borrowed"
	}
	return "cell is already borrowed"
}

// Details returns the multi-line body of the diagnostic: every active borrow
// in ledger order (oldest first), then the rejected attempt.
//
// The "current active borrows" phrase and the per-borrow "file:line" lines
// are the stable, grep-able part of the format.
func (v *Violation) Details() string {
	var buf strings.Builder

	buf.WriteString("current active borrows:\n")
	for i, rec := range v.Active {
		fmt.Fprintf(&buf, "  %d - %s %s\n", i, rec.Kind, rec.Site)
	}

	if v.AttemptSite.IsZero() {
		fmt.Fprintf(&buf, "rejected: %s borrow (attempt location not recorded)\n", v.Attempt)
	} else {
		fmt.Fprintf(&buf, "rejected: %s borrow at %s\n", v.Attempt, v.AttemptSite)
	}

	return buf.String()
}

// Format writes the full banner-style report, the form used for the fatal
// Borrow/BorrowMut path.
//
// Layout:
//
//	==================
//	WARNING: BORROW VIOLATION
//	cell is already borrowed
//	current active borrows:
//	  0 - shared /path/to/main.go:14 main.main()
//	  1 - shared /path/to/main.go:15 main.main()
//	rejected: exclusive borrow at /path/to/main.go:17 main.main()
//	==================
func (v *Violation) Format(w io.Writer) {
	fmt.Fprintf(w, "==================\n")
	fmt.Fprintf(w, "WARNING: BORROW VIOLATION\n")
	fmt.Fprintf(w, "%s\n", v.Headline())
	fmt.Fprint(w, v.Details())
	fmt.Fprintf(w, "==================\n")
}

// String returns the banner report as a string. This is the panic value of
// the fatal path, so the crash output carries the whole diagnostic.
func (v *Violation) String() string {
	var buf strings.Builder
	v.Format(&buf)
	return buf.String()
}
