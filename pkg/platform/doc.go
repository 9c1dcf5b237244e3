// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes GOOS names and the small set of host facts the resolver
// needs: where per-user configuration lives and whether the host can replace
// the running process image in place.
package platform
