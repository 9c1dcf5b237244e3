// SPDX-License-Identifier: MPL-2.0

package triple

import (
	"math"
	"testing"
)

func TestDerive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version string
		arch    string
		want    string
	}{
		{"10.14", "x86_64", "x86_64-apple-darwin18"},
		{"11.0", "arm64", "arm64-apple-darwin17"},
		{"9.3", "armv7", "armv7-apple-darwin15"},
		{"4.1", "x86_64", "x86_64-apple-darwin10"},
		{"4.2", "armv6", "armv6-apple-darwin10"},
		{"4.3", "armv7", "armv7-apple-darwin11"},
		{"10.6", "i386", "i386-apple-darwin10"},
		{"10.3", "arm64", "arm64-apple-darwin16"},
		{"8.4", "arm64", "arm64-apple-darwin14"},
		{"7.1", "armv7s", "armv7s-apple-darwin14"},
		{"6.1", "armv7", "armv7-apple-darwin13"},
		{"5.0", "armv7", "armv7-apple-darwin11"},
		{"3.2", "armv6", "armv6-apple-darwin10"},
		{"2.0", "armv6", "armv6-apple-darwin9"},
		{"1.0", "armv6", "armv6-apple-darwin9"},
		{"12.0", "arm64", "arm64-apple-darwin9"},
		{"beta", "arm64", "arm64-apple-darwin9"},
	}

	for _, tt := range tests {
		t.Run(tt.version+"/"+tt.arch, func(t *testing.T) {
			t.Parallel()

			got, ok := Derive(tt.version, tt.arch)
			if !ok {
				t.Fatalf("Derive(%q, %q) reported no triple", tt.version, tt.arch)
			}
			if got != tt.want {
				t.Errorf("Derive(%q, %q) = %q, want %q", tt.version, tt.arch, got, tt.want)
			}
		})
	}
}

func TestDerive_None(t *testing.T) {
	t.Parallel()

	for _, tc := range [][2]string{{"", "arm64"}, {"", "x86_64"}, {"10.14", ""}} {
		if got, ok := Derive(tc[0], tc[1]); ok || got != "" {
			t.Errorf("Derive(%q, %q) = %q, %v; want none", tc[0], tc[1], got, ok)
		}
	}
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Version
	}{
		{"10.14", Version{10, 14, 0}},
		{"10.14.6", Version{10, 14, 6}},
		{"10.14.6.1", Version{10, 14, 6}},
		{"10", Version{10, 0, 0}},
		{"10..2", Version{10, 0, 2}},
		{".5", Version{0, 5, 0}},
		{"10-3b7", Version{10, 3, 7}},
		{"", Version{}},
		{"99999999999999999999", Version{Major: math.MaxInt32}},
	}

	for _, tt := range tests {
		if got := ParseVersion(tt.in); got != tt.want {
			t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestIsDesktopArch(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"x86_64": true,
		"i386":   true,
		"arm64":  false,
		"armv7":  false,
		"":       false,
	}
	for arch, want := range tests {
		if got := IsDesktopArch(arch); got != want {
			t.Errorf("IsDesktopArch(%q) = %v, want %v", arch, got, want)
		}
	}
}

func TestKernelMajor_DesktopOnlyAffectsTen(t *testing.T) {
	t.Parallel()

	for major := range 13 {
		v := Version{Major: major, Minor: 5}
		desktop, mobile := KernelMajor(v, true), KernelMajor(v, false)
		if major == 10 {
			if desktop != 9 || mobile != 16 {
				t.Errorf("KernelMajor(10.5) = %d/%d, want 9/16", desktop, mobile)
			}
			continue
		}
		if desktop != mobile {
			t.Errorf("KernelMajor(%d.5) desktop=%d mobile=%d, want equal", major, desktop, mobile)
		}
	}
}
