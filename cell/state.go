package cell

import "github.com/kolkov/debugcell/internal/cell/borrowflag"

// BorrowState is the answer of the State method on a Cell.
type BorrowState int

const (
	// Unused means no borrow is outstanding.
	Unused BorrowState = iota
	// Reading means at least one shared borrow is live.
	Reading
	// Writing means the exclusive borrow is live.
	Writing
)

// String returns the state name.
func (s BorrowState) String() string {
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

// stateOf maps the internal flag state onto the public enum.
func stateOf(s borrowflag.State) BorrowState {
	switch s {
	case borrowflag.Reading:
		return Reading
	case borrowflag.Writing:
		return Writing
	default:
		return Unused
	}
}
