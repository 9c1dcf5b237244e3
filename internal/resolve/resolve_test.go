// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mkdirAll(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}

func TestSDK(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	want := filepath.Join(root, "SDKs", "iPhoneOS10.3.sdk")
	mkdirAll(t, want)

	got, err := SDK(root, "iPhoneOS10.3")
	if err != nil {
		t.Fatalf("SDK() error = %v", err)
	}
	if got != want {
		t.Errorf("SDK() = %q, want %q", got, want)
	}
}

func TestToolchain(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	want := filepath.Join(root, "Toolchains", "ios-10.toolchain")
	mkdirAll(t, want)

	got, err := Toolchain(root, "ios-10")
	if err != nil {
		t.Fatalf("Toolchain() error = %v", err)
	}
	if got != want {
		t.Errorf("Toolchain() = %q, want %q", got, want)
	}
}

func TestBundle_Invalid(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	// A regular file where the SDK directory should be.
	mkdirAll(t, filepath.Join(root, "SDKs"))
	if err := os.WriteFile(filepath.Join(root, "SDKs", "File.sdk"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		fn   func() (string, error)
	}{
		{"missing sdk", func() (string, error) { return SDK(root, "Nope") }},
		{"sdk is a file", func() (string, error) { return SDK(root, "File") }},
		{"empty sdk name", func() (string, error) { return SDK(root, "") }},
		{"missing toolchain", func() (string, error) { return Toolchain(root, "nope") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.fn()
			if !errors.Is(err, ErrPathInvalid) {
				t.Fatalf("error = %v, want ErrPathInvalid", err)
			}
			var pe *PathInvalidError
			if !errors.As(err, &pe) {
				t.Fatalf("error type = %T, want *PathInvalidError", err)
			}
		})
	}
}

func TestDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Dir(root); err != nil {
		t.Errorf("Dir(%q) error = %v", root, err)
	}
	if err := Dir(file); !errors.Is(err, ErrPathInvalid) {
		t.Errorf("Dir(file) error = %v, want ErrPathInvalid", err)
	}
	if err := Dir(filepath.Join(root, "missing")); !errors.Is(err, ErrPathInvalid) {
		t.Errorf("Dir(missing) error = %v, want ErrPathInvalid", err)
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	got, err := Join("/dev", "usr", "bin")
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if got != filepath.Join("/dev", "usr", "bin") {
		t.Errorf("Join() = %q", got)
	}

	atLimit := "/" + strings.Repeat("a", MaxPathLen-1)
	if _, err := Join(atLimit); err != nil {
		t.Errorf("Join() at limit error = %v", err)
	}

	_, err = Join(atLimit, "b")
	if !errors.Is(err, ErrPathTooLong) {
		t.Fatalf("Join() over limit error = %v, want ErrPathTooLong", err)
	}
	var tl *PathTooLongError
	if !errors.As(err, &tl) || tl.Len != MaxPathLen+2 {
		t.Errorf("Join() over limit error = %#v", err)
	}
}

func TestBundleName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, suffix, want string
	}{
		{"iPhoneOS10.3", SDKSuffix, "iPhoneOS10.3"},
		{"iPhoneOS10.3.sdk", SDKSuffix, "iPhoneOS10.3"},
		{"/dev/SDKs/MacOSX10.14.sdk", SDKSuffix, "MacOSX10.14"},
		{"/dev/SDKs/MacOSX10.14.sdk/", SDKSuffix, "MacOSX10.14"},
		{"ios-10.toolchain", ToolchainSuffix, "ios-10"},
		{"ios-10.sdk", ToolchainSuffix, "ios-10.sdk"},
		{"", SDKSuffix, ""},
		{"/", SDKSuffix, ""},
	}

	for _, tt := range tests {
		if got := BundleName(tt.in, tt.suffix); got != tt.want {
			t.Errorf("BundleName(%q, %q) = %q, want %q", tt.in, tt.suffix, got, tt.want)
		}
	}
}
