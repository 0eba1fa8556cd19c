//go:build debugcell_release

package ledger

import "github.com/kolkov/debugcell/internal/cell/callsite"

// Ledger is the release-configuration no-op. It is a zero-size struct and
// every method compiles to nothing, preserving the zero-overhead property of
// release builds. Borrowing semantics live entirely in the flag word.
type Ledger struct{}

// Add records nothing and returns the reserved ticket 0.
func (l *Ledger) Add(Kind, callsite.Site) Ticket { return 0 }

// Remove does nothing.
func (l *Ledger) Remove(Ticket) {}

// Snapshot returns nil: release builds keep no borrow locations.
func (l *Ledger) Snapshot() []Record { return nil }

// Len returns 0.
func (l *Ledger) Len() int { return 0 }
