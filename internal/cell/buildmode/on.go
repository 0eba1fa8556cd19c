//go:build !debugcell_release

package buildmode

// Tracking is true when the module was built in the debug configuration
// (without the "debugcell_release" build tag).
const Tracking = true
