//go:build !debugcell_release

package ledger

import "github.com/kolkov/debugcell/internal/cell/callsite"

// Ledger records the cell's currently live borrows in insertion order.
// The zero value is an empty ledger, ready to use.
//
// This is the debug-configuration implementation; see ledger_off.go for the
// release no-op.
type Ledger struct {
	next    Ticket
	records []Record
}

// Add appends a record for a freshly taken borrow and returns its ticket.
//
// The backing slice keeps its capacity across the empty state, so a cell
// that repeatedly borrows and releases settles into zero allocations.
func (l *Ledger) Add(kind Kind, site callsite.Site) Ticket {
	l.next++
	t := l.next
	l.records = append(l.records, Record{Kind: kind, Site: site, Ticket: t})
	return t
}

// Remove deletes the record with the given ticket, preserving the order of
// the remaining records.
//
// Panics if the ticket is not present: the only way that happens is a handle
// releasing twice or a ticket from a different cell, both programming bugs
// upstream. The flag guards the same misuse, so in practice the flag panics
// first.
func (l *Ledger) Remove(t Ticket) {
	for i := range l.records {
		if l.records[i].Ticket == t {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return
		}
	}
	panic("debugcell: no ledger record for released borrow")
}

// Snapshot returns a copy of the live records, oldest first.
//
// The copy is what violation reports and errors hold on to; it must not
// alias the live slice, which keeps mutating as borrows come and go.
func (l *Ledger) Snapshot() []Record {
	if len(l.records) == 0 {
		return nil
	}
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of live records.
func (l *Ledger) Len() int {
	return len(l.records)
}
