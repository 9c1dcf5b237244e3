// SPDX-License-Identifier: MPL-2.0

// Package metadata loads the INI metadata files that describe SDK and
// toolchain bundles, plus the system-wide default selection file.
//
// Files are streamed line by line and every known key is applied in file
// order, so a repeated key keeps its last value and the platform kind of an
// SDK follows whichever deployment-target key appeared last. Records are
// parsed fresh on every call; nothing is cached between resolutions.
package metadata
