//go:build debugcell_release

package buildmode

// Tracking is false when the module was built with the "debugcell_release"
// build tag. Borrow semantics are unchanged; only diagnostics are reduced.
const Tracking = false
