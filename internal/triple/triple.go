// SPDX-License-Identifier: MPL-2.0

// Package triple derives compiler target triples of the form
// <arch>-apple-darwin<kernel> from an OS version and an architecture.
package triple

import (
	"math"
	"strconv"
)

// Version is a parsed dotted OS version. Components past patch are dropped.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion scans s left to right. Digits accumulate base-10 into the
// current component and any other byte moves on to the next component, so
// "10..2" parses as 10.0.2 and "abc" as 0.0.0. Values saturate instead of
// overflowing.
func ParseVersion(s string) Version {
	var parts [3]int
	idx := 0
	for i := range len(s) {
		c := s[i]
		if c < '0' || c > '9' {
			idx++
			continue
		}
		if idx >= len(parts) {
			continue
		}
		parts[idx] = accumulate(parts[idx], int(c-'0'))
	}
	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}
}

func accumulate(n, digit int) int {
	if n > (math.MaxInt32-digit)/10 {
		return math.MaxInt32
	}
	return n*10 + digit
}

// IsDesktopArch reports whether arch targets macOS. Every other
// architecture is treated as iOS-family.
func IsDesktopArch(arch string) bool {
	return arch == "x86_64" || arch == "i386"
}

// KernelMajor maps an OS version to the Darwin kernel major it shipped with.
func KernelMajor(v Version, desktop bool) int {
	switch v.Major {
	case 11:
		return 17
	case 10:
		if desktop {
			return v.Minor + 4
		}
		return 16
	case 9:
		return 15
	case 7, 8:
		return 14
	case 6:
		return 13
	case 5:
		return 11
	case 4:
		if v.Minor <= 2 {
			return 10
		}
		return 11
	case 3:
		return 10
	default:
		return 9
	}
}

// Derive returns the target triple for version and arch. It reports false
// when version or arch is empty.
func Derive(version, arch string) (string, bool) {
	if version == "" || arch == "" {
		return "", false
	}
	kernel := KernelMajor(ParseVersion(version), IsDesktopArch(arch))
	return arch + "-apple-darwin" + strconv.Itoa(kernel), true
}
