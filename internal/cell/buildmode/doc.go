// Package buildmode exposes the build configuration of the debugcell module.
//
// The module has exactly two configurations:
//
//   - Debug (the default): every live borrow's call site is recorded in the
//     cell's ledger, violation diagnostics enumerate all conflicting borrows,
//     and cells are pinned to the goroutine holding their borrows.
//   - Release (build tag "debugcell_release"): the ledger is a zero-size
//     no-op, diagnostics carry no location data, and no goroutine checks run.
//
// Both configurations enforce identical borrowing semantics. The switch is a
// compile-time constant so the release configuration pays nothing for the
// bookkeeping: every "if buildmode.Tracking" branch is dead code there.
//
// Build a release binary with:
//
//	go build -tags debugcell_release ./...
package buildmode
