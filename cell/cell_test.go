package cell_test

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/debugcell/cell"
	"github.com/kolkov/debugcell/internal/cell/buildmode"
)

// TestNewThenBorrowObservesValue: a fresh cell is immediately borrowable and
// the view observes exactly the initial value.
func TestNewThenBorrowObservesValue(t *testing.T) {
	c := cell.New(41)

	r, err := c.TryBorrow()
	require.NoError(t, err)
	defer r.Release()

	require.Equal(t, 41, r.Value())
	require.Equal(t, cell.Reading, c.State())
}

// TestManySharedBorrows: the Nth TryBorrow brings the live-shared count to N
// while no exclusive borrow is outstanding.
func TestManySharedBorrows(t *testing.T) {
	c := cell.New("payload")

	var refs []*cell.Ref[string]
	for n := 1; n <= 8; n++ {
		r, err := c.TryBorrow()
		require.NoError(t, err, "borrow #%d", n)
		require.Equal(t, n, c.Readers())
		refs = append(refs, r)
	}

	for _, r := range refs {
		require.Equal(t, "payload", r.Value())
		r.Release()
	}
	require.Equal(t, cell.Unused, c.State())
}

// TestExclusiveRequiresUnused: TryBorrowMut succeeds iff nothing is
// outstanding, and while it is live every further borrow fails.
func TestExclusiveRequiresUnused(t *testing.T) {
	c := cell.New(1)

	m, err := c.TryBorrowMut()
	require.NoError(t, err)
	require.Equal(t, cell.Writing, c.State())

	_, err = c.TryBorrow()
	require.ErrorIs(t, err, cell.ErrAlreadyMutablyBorrowed)

	_, err = c.TryBorrowMut()
	require.ErrorIs(t, err, cell.ErrAlreadyBorrowed)

	m.Release()
	require.Equal(t, cell.Unused, c.State())

	m2, err := c.TryBorrowMut()
	require.NoError(t, err)
	m2.Release()
}

// TestOutOfOrderRelease: acquire A, B, C; release B; A and C stay valid and
// the count is exactly 2.
func TestOutOfOrderRelease(t *testing.T) {
	c := cell.New(7)

	a := c.Borrow()
	b := c.Borrow()
	cc := c.Borrow()
	require.Equal(t, 3, c.Readers())

	b.Release()
	require.Equal(t, 2, c.Readers())
	require.Equal(t, 7, a.Value())
	require.Equal(t, 7, cc.Value())

	a.Release()
	cc.Release()
	require.Equal(t, cell.Unused, c.State())

	m, err := c.TryBorrowMut()
	require.NoError(t, err)
	m.Release()
}

// TestSharedThenMutScenario is the end-to-end scenario: two shared borrows
// block the mutable one (the error lists both), then after release the write
// goes through and is observed.
func TestSharedThenMutScenario(t *testing.T) {
	c := cell.New(5)

	r1 := c.Borrow()
	r2 := c.Borrow()

	_, err := c.TryBorrowMut()
	require.ErrorIs(t, err, cell.ErrAlreadyBorrowed)

	if buildmode.Tracking {
		msg := err.Error()
		require.Contains(t, msg, "current active borrows:")
		require.Equal(t, 2, strings.Count(msg, " - shared "), "both shared borrows listed:\n%s", msg)
		require.Contains(t, msg, "cell_test.go", "call sites point at this test:\n%s", msg)
	} else {
		require.Equal(t, "cell is already borrowed", err.Error())
	}

	r1.Release()
	r2.Release()

	m := c.BorrowMut()
	m.Set(10)
	m.Release()

	r := c.Borrow()
	defer r.Release()
	require.Equal(t, 10, r.Value())
}

// TestMutThenSharedScenario: the exclusive borrow blocks shared ones until
// released.
func TestMutThenSharedScenario(t *testing.T) {
	c := cell.New("x")

	m := c.BorrowMut()

	_, err := c.TryBorrow()
	require.ErrorIs(t, err, cell.ErrAlreadyMutablyBorrowed)

	if buildmode.Tracking {
		require.Contains(t, err.Error(), " - exclusive ")
	}

	m.Release()

	r, err := c.TryBorrow()
	require.NoError(t, err)
	require.Equal(t, "x", r.Value())
	r.Release()
}

// TestBorrowFatalDiagnostic: the non-Try variants escalate to a panic whose
// message carries the full report in debug builds and only the kind message
// in release builds.
func TestBorrowFatalDiagnostic(t *testing.T) {
	c := cell.New(3)
	m := c.BorrowMut()
	defer m.Release()

	msg := recoverFrom(t, func() { c.Borrow() })

	if buildmode.Tracking {
		require.Contains(t, msg, "WARNING: BORROW VIOLATION")
		require.Contains(t, msg, "cell is already mutably borrowed")
		require.Contains(t, msg, "current active borrows:")
		require.Contains(t, msg, "cell_test.go")
	} else {
		require.Equal(t, "cell is already mutably borrowed", msg)
	}
}

// TestBorrowMutFatalListsAllConflicts: the fatal exclusive path reports
// every live shared borrow, not just one.
func TestBorrowMutFatalListsAllConflicts(t *testing.T) {
	c := cell.New(3)
	r1 := c.Borrow()
	r2 := c.Borrow()
	defer r1.Release()
	defer r2.Release()

	msg := recoverFrom(t, func() { c.BorrowMut() })

	if buildmode.Tracking {
		require.Equal(t, 2, strings.Count(msg, " - shared "), "report:\n%s", msg)
		require.Contains(t, msg, "rejected: exclusive borrow")
	} else {
		require.Equal(t, "cell is already borrowed", msg)
	}
}

// TestReplaceAndTake: direct access works only in the Unused state.
func TestReplaceAndTake(t *testing.T) {
	c := cell.New(1)

	old, err := c.Replace(2)
	require.NoError(t, err)
	require.Equal(t, 1, old)

	r := c.Borrow()
	_, err = c.Replace(3)
	require.ErrorIs(t, err, cell.ErrAlreadyBorrowed)
	_, err = c.Take()
	require.ErrorIs(t, err, cell.ErrAlreadyBorrowed)
	require.Equal(t, 2, r.Value(), "failed direct access must not disturb the value")
	r.Release()

	got, err := c.Take()
	require.NoError(t, err)
	require.Equal(t, 2, got)

	r2 := c.Borrow()
	require.Equal(t, 0, r2.Value())
	r2.Release()
}

// TestClone: a clone is a fresh unborrowed cell; cloning is blocked by the
// exclusive borrow only.
func TestClone(t *testing.T) {
	c := cell.New(5)

	r := c.Borrow()
	clone, err := c.Clone()
	require.NoError(t, err, "shared borrows do not block cloning")
	r.Release()

	require.Equal(t, cell.Unused, clone.State())
	cr := clone.Borrow()
	require.Equal(t, 5, cr.Value())
	cr.Release()

	m := c.BorrowMut()
	_, err = c.Clone()
	require.ErrorIs(t, err, cell.ErrAlreadyMutablyBorrowed)
	m.Release()
}

// TestEqual compares through shared borrows.
func TestEqual(t *testing.T) {
	a := cell.New(5)
	b := cell.New(5)
	require.True(t, cell.Equal(a, b))

	m := b.BorrowMut()
	m.Set(6)
	m.Release()
	require.False(t, cell.Equal(a, b))

	require.Equal(t, cell.Unused, a.State(), "Equal releases its borrows")
	require.Equal(t, cell.Unused, b.State())
}

// TestHandleMisusePanics: double release and use after release are
// programming bugs and panic in both build modes.
func TestHandleMisusePanics(t *testing.T) {
	t.Run("ref released twice", func(t *testing.T) {
		c := cell.New(1)
		r := c.Borrow()
		r.Release()
		require.Panics(t, func() { r.Release() })
	})

	t.Run("ref used after release", func(t *testing.T) {
		c := cell.New(1)
		r := c.Borrow()
		r.Release()
		require.Panics(t, func() { r.Value() })
	})

	t.Run("refmut released twice", func(t *testing.T) {
		c := cell.New(1)
		m := c.BorrowMut()
		m.Release()
		require.Panics(t, func() { m.Release() })
	})

	t.Run("refmut used after release", func(t *testing.T) {
		c := cell.New(1)
		m := c.BorrowMut()
		m.Release()
		require.Panics(t, func() { m.Set(2) })
		require.Panics(t, func() { m.Value() })
		require.Panics(t, func() { m.Update(func(v int) int { return v }) })
	})
}

// TestUpdate applies a function under the exclusive borrow.
func TestUpdate(t *testing.T) {
	c := cell.New(20)

	m := c.BorrowMut()
	m.Update(func(v int) int { return v + 1 })
	require.Equal(t, 21, m.Value())
	m.Release()
}

// TestIdleCellMovesBetweenGoroutines: handing a cell with no live borrows to
// another goroutine is legal in every build mode.
func TestIdleCellMovesBetweenGoroutines(t *testing.T) {
	c := cell.New(1)

	r := c.Borrow()
	require.Equal(t, 1, r.Value())
	r.Release()

	done := make(chan int)
	go func() {
		m := c.BorrowMut()
		m.Set(2)
		m.Release()
		r := c.Borrow()
		defer r.Release()
		done <- r.Value()
	}()
	require.Equal(t, 2, <-done)
}

// TestCrossGoroutineUseWithLiveBorrowIsFatal: debug builds pin a cell to the
// goroutine holding its borrows and fail fast on use from any other.
func TestCrossGoroutineUseWithLiveBorrowIsFatal(t *testing.T) {
	if !buildmode.Tracking {
		t.Skip("goroutine pinning is a debug-build check")
	}

	c := cell.New(1)
	r := c.Borrow()
	defer r.Release()

	panicked := make(chan string, 1)
	go func() {
		defer func() {
			if v := recover(); v != nil {
				panicked <- v.(string)
				return
			}
			panicked <- ""
		}()
		c.TryBorrow() //nolint:errcheck // the call must panic before returning
	}()

	msg := <-panicked
	require.Contains(t, msg, "not safe for concurrent use")
}

// TestErrorKindsAreStable: errors.Is matches the sentinels identically in
// both build modes; only the message richness differs.
func TestErrorKindsAreStable(t *testing.T) {
	c := cell.New(1)
	m := c.BorrowMut()
	defer m.Release()

	_, errShared := c.TryBorrow()
	_, errMut := c.TryBorrowMut()

	require.ErrorIs(t, errShared, cell.ErrAlreadyMutablyBorrowed)
	require.ErrorIs(t, errMut, cell.ErrAlreadyBorrowed)
	require.False(t, errors.Is(errShared, cell.ErrAlreadyBorrowed))

	var be *cell.BorrowError
	require.True(t, errors.As(errShared, &be))
}

// TestGetInfo reports the build configuration.
func TestGetInfo(t *testing.T) {
	info := cell.GetInfo()
	require.Equal(t, cell.Version, info.Version)
	require.Equal(t, buildmode.Tracking, info.Tracking)
}

// recoverFrom runs f, requires that it panics, and returns the panic value
// as a string.
func recoverFrom(t *testing.T, f func()) (msg string) {
	t.Helper()
	defer func() {
		v := recover()
		require.NotNil(t, v, "expected a panic")
		s, ok := v.(string)
		require.True(t, ok, "panic value should be the diagnostic string, got %T", v)
		msg = s
	}()
	f()
	return ""
}
