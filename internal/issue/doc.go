// SPDX-License-Identifier: MPL-2.0

// Package issue holds the user-facing error type printed as
// "xcrun: error: ..." and a catalog of Markdown explanations, keyed by Id,
// that verbose mode renders with glamour below the error.
package issue
