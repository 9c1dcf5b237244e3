// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ListSeparator joins search-path style lists (PATH, LD_LIBRARY_PATH).
// The child environment always uses the POSIX separator because the
// variables it composes are consumed by POSIX toolchains.
const ListSeparator = ":"

// SupportsExec reports whether the host OS can replace the current process
// image. On hosts that cannot, tools are spawned and their exit status is
// forwarded instead.
func SupportsExec() bool {
	return supportsExec(runtime.GOOS)
}

func supportsExec(goos string) bool {
	switch goos {
	case Windows, "plan9", "js", "wasip1":
		return false
	default:
		return true
	}
}
