package cell

import "github.com/kolkov/debugcell/internal/cell/buildmode"

// Version information for the debugcell module.
const (
	// Version is the current version of the module.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides build information about the cell implementation.
type Info struct {
	// Version is the module version string.
	Version string

	// Tracking indicates whether this binary records borrow call sites
	// (debug configuration) or runs the zero-overhead release ledger.
	Tracking bool
}

// GetInfo returns build information.
//
// Example:
//
//	info := cell.GetInfo()
//	fmt.Printf("debugcell %s (tracking: %v)\n", info.Version, info.Tracking)
func GetInfo() Info {
	return Info{
		Version:  Version,
		Tracking: buildmode.Tracking,
	}
}
