// SPDX-License-Identifier: MPL-2.0

// Package resolve maps SDK and toolchain names to bundle directories under a
// developer root and provides bounded path construction.
package resolve
