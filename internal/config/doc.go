// SPDX-License-Identifier: MPL-2.0

// Package config loads xcrun's own settings using Viper with CUE as the file format.
//
// Settings are read from <config dir>/xcrun/config.cue, where the config dir is
// $XDG_CONFIG_HOME (default ~/.config) on Linux, ~/Library/Application Support on
// macOS and %APPDATA% on Windows. Every key can be overridden by an XCRUN_<KEY>
// environment variable. The file is validated against the embedded #Config schema
// (config_schema.cue) before it is merged over the defaults.
//
// These settings never name an SDK or toolchain themselves; selection comes
// from flags, SDKROOT/TOOLCHAINS or the default selection file.
package config
