// Package borrowflag implements the borrow-state machine word for a cell.
//
// The entire state fits in a single int:
//
//	 0  unused: no borrow outstanding
//	 N  reading: N live shared borrows (N >= 1)
//	-1  writing: exactly one live exclusive borrow
//
// Transitions are strictly sequential; the word carries no synchronization
// and must only be touched from one goroutine at a time. The owning cell
// enforces that discipline (in debug builds, with goroutine pinning).
package borrowflag

// State classifies the flag word for callers that do not care about the
// exact reader count.
type State int

const (
	// Unused means no borrow is outstanding.
	Unused State = iota
	// Reading means at least one shared borrow is live.
	Reading
	// Writing means the exclusive borrow is live.
	Writing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unused:
		return "Unused"
	case Reading:
		return "Reading"
	case Writing:
		return "Writing"
	default:
		return "Unknown"
	}
}

const (
	unused  = 0
	writing = -1 // reserved sentinel: the one live exclusive borrow
)

// Flag is the borrow-state word. The zero value is an unborrowed flag,
// ready to use.
type Flag struct {
	word int
}

// TryShared attempts to take one shared borrow.
//
// Fails (returns false, no state change) only while the exclusive borrow is
// live. Otherwise increments the reader count: 0 -> 1, N -> N+1.
func (f *Flag) TryShared() bool {
	if f.word == writing {
		return false
	}
	f.word++
	return true
}

// TryExclusive attempts to take the exclusive borrow.
//
// Fails (returns false, no state change) while any borrow is live, shared or
// exclusive. Otherwise moves the word to the writing sentinel.
func (f *Flag) TryExclusive() bool {
	if f.word != unused {
		return false
	}
	f.word = writing
	return true
}

// ReleaseShared returns one shared borrow.
//
// Panics if no shared borrow is live: that means a handle was released twice
// or the flag was corrupted, both programming bugs in the caller.
func (f *Flag) ReleaseShared() {
	if f.word <= unused {
		panic("debugcell: shared release without a live shared borrow")
	}
	f.word--
}

// ReleaseExclusive returns the exclusive borrow.
//
// Panics if the exclusive borrow is not live, for the same reason as
// ReleaseShared.
func (f *Flag) ReleaseExclusive() {
	if f.word != writing {
		panic("debugcell: exclusive release without a live exclusive borrow")
	}
	f.word = unused
}

// State classifies the current word.
func (f *Flag) State() State {
	switch {
	case f.word == unused:
		return Unused
	case f.word == writing:
		return Writing
	default:
		return Reading
	}
}

// Readers returns the number of live shared borrows (0 when unused or
// mutably borrowed).
func (f *Flag) Readers() int {
	if f.word > 0 {
		return f.word
	}
	return 0
}
