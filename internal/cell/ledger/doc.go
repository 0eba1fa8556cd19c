// Package ledger tracks the currently live borrows of a cell.
//
// In the debug configuration (the default) the ledger is an insertion-ordered
// list of records, one per live borrow, each carrying the borrow kind and the
// call site at which it was taken. Records are removed by ticket, not by
// kind, so releasing borrows out of order keeps the remaining records exact.
//
// In the release configuration (build tag "debugcell_release") the ledger is
// a zero-size no-op behind the same API: Add returns ticket 0, Remove does
// nothing, Snapshot returns nil. The borrow-state machine never consults the
// ledger, so dropping it cannot change borrowing semantics.
//
// The ledger is not safe for concurrent use; the owning cell is pinned to a
// single goroutine while borrows are live.
package ledger
