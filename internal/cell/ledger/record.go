package ledger

import "github.com/kolkov/debugcell/internal/cell/callsite"

// Kind distinguishes the two borrow flavors.
type Kind int

const (
	// Shared is a read-only borrow; any number may be live at once.
	Shared Kind = iota
	// Exclusive is the mutable borrow; at most one may be live.
	Exclusive
)

// String returns the kind name as used in diagnostics.
func (k Kind) String() string {
	switch k {
	case Shared:
		return "shared"
	case Exclusive:
		return "exclusive"
	default:
		return "unknown"
	}
}

// Ticket identifies one ledger entry. Tickets are unique per ledger for its
// whole lifetime and never reused, so a stale handle can never remove a
// newer borrow's record. Ticket 0 is reserved for "nothing recorded"
// (release builds).
type Ticket uint64

// Record is one live borrow: its kind and where it was taken.
type Record struct {
	// Kind is Shared or Exclusive.
	Kind Kind

	// Site is the call site at which the borrow was created.
	Site callsite.Site

	// Ticket identifies this record for targeted removal.
	Ticket Ticket
}
