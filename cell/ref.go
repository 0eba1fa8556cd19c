package cell

import (
	"github.com/kolkov/debugcell/internal/cell/buildmode"
	"github.com/kolkov/debugcell/internal/cell/ledger"
)

// Ref is a live shared (read-only) view of a cell's value.
//
// Each Ref corresponds to exactly one ledger entry; do not duplicate it.
// Release returns the borrow and is the only way the borrow ends,
// idiomatically as "defer r.Release()". A Ref never extends the cell's
// lifetime; it only holds a back reference for release.
type Ref[T any] struct {
	noCopy noCopy //nolint:unused // present for go vet copylocks

	cell     *Cell[T]
	ticket   ledger.Ticket
	released bool
}

// Value returns the borrowed value. Panics if the Ref was already released.
func (r *Ref[T]) Value() T {
	if r.released {
		panic("debugcell: Ref used after Release")
	}
	return r.cell.value
}

// Release ends this shared borrow: the live-reader count drops by one and
// this Ref's ledger entry (exactly this one, releases may happen in any
// order) is removed. Panics if called twice.
func (r *Ref[T]) Release() {
	if r.released {
		panic("debugcell: Ref released twice")
	}
	r.cell.checkOwner()
	r.released = true
	r.cell.flag.ReleaseShared()
	if buildmode.Tracking {
		r.cell.ledger.Remove(r.ticket)
	}
}

// RefMut is the live exclusive (mutable) view of a cell's value. At most one
// exists per cell at a time.
//
// The same handle rules as Ref apply: no duplication, Release ends the
// borrow, double release and use after release panic.
type RefMut[T any] struct {
	noCopy noCopy //nolint:unused // present for go vet copylocks

	cell     *Cell[T]
	ticket   ledger.Ticket
	released bool
}

// Value returns the borrowed value. Panics if the RefMut was released.
func (m *RefMut[T]) Value() T {
	if m.released {
		panic("debugcell: RefMut used after Release")
	}
	return m.cell.value
}

// Set overwrites the borrowed value. Panics if the RefMut was released.
func (m *RefMut[T]) Set(value T) {
	if m.released {
		panic("debugcell: RefMut used after Release")
	}
	m.cell.value = value
}

// Update applies f to the current value and stores the result. Panics if the
// RefMut was released.
func (m *RefMut[T]) Update(f func(T) T) {
	if m.released {
		panic("debugcell: RefMut used after Release")
	}
	m.cell.value = f(m.cell.value)
}

// Release ends the exclusive borrow, returning the cell to Unused. Panics if
// called twice.
func (m *RefMut[T]) Release() {
	if m.released {
		panic("debugcell: RefMut released twice")
	}
	m.cell.checkOwner()
	m.released = true
	m.cell.flag.ReleaseExclusive()
	if buildmode.Tracking {
		m.cell.ledger.Remove(m.ticket)
	}
}
