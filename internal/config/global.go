// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces ConfigDir's platform lookup when non-empty.
var configDirOverride string

// Reset drops any override set by SetConfigDirOverride.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride makes ConfigDir return dir. Tests use it where
// os.UserHomeDir cannot be steered through HOME.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
