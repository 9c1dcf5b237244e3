// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// MaxPathLen bounds every path this package builds.
	MaxPathLen = 4096

	// SDKsDir holds the SDK bundles of a developer root.
	SDKsDir = "SDKs"
	// ToolchainsDir holds the toolchain bundles of a developer root.
	ToolchainsDir = "Toolchains"

	// SDKSuffix is the directory suffix of an SDK bundle.
	SDKSuffix = ".sdk"
	// ToolchainSuffix is the directory suffix of a toolchain bundle.
	ToolchainSuffix = ".toolchain"
)

var (
	// ErrPathInvalid is returned when a path does not name an existing directory.
	ErrPathInvalid = errors.New("invalid path")

	// ErrPathTooLong is returned when a built path would exceed MaxPathLen.
	ErrPathTooLong = errors.New("path too long")
)

type (
	// PathInvalidError describes a path that failed directory validation.
	PathInvalidError struct {
		Path string
		// What names the thing the path was expected to be ("sdk", "toolchain", ...).
		What string
		Err  error
	}

	// PathTooLongError reports the length a joined path would have had.
	PathTooLongError struct {
		Prefix string
		Len    int
	}
)

// Error implements the error interface.
func (e *PathInvalidError) Error() string {
	what := e.What
	if what == "" {
		what = "directory"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %q is not a valid directory: %v", what, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %q is not a valid directory", what, e.Path)
}

// Unwrap returns ErrPathInvalid so callers can use errors.Is.
func (e *PathInvalidError) Unwrap() error { return ErrPathInvalid }

// Error implements the error interface.
func (e *PathTooLongError) Error() string {
	return fmt.Sprintf("path starting %q is %d bytes, limit is %d", e.Prefix, e.Len, MaxPathLen)
}

// Unwrap returns ErrPathTooLong so callers can use errors.Is.
func (e *PathTooLongError) Unwrap() error { return ErrPathTooLong }

// Join joins path elements like filepath.Join and fails instead of
// producing a path longer than MaxPathLen.
func Join(elem ...string) (string, error) {
	p := filepath.Join(elem...)
	if len(p) > MaxPathLen {
		prefix := p[:min(len(p), 64)]
		return "", &PathTooLongError{Prefix: prefix, Len: len(p)}
	}
	return p, nil
}

// Dir checks that path names an existing directory.
func Dir(path string) error {
	return dir(path, "")
}

func dir(path, what string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &PathInvalidError{Path: path, What: what, Err: err}
	}
	if !info.IsDir() {
		return &PathInvalidError{Path: path, What: what, Err: errors.New("not a directory")}
	}
	return nil
}

// SDK returns the bundle directory of the named SDK: <root>/SDKs/<name>.sdk.
func SDK(root, name string) (string, error) {
	return bundle(root, SDKsDir, name, SDKSuffix, "sdk")
}

// Toolchain returns the bundle directory of the named toolchain:
// <root>/Toolchains/<name>.toolchain.
func Toolchain(root, name string) (string, error) {
	return bundle(root, ToolchainsDir, name, ToolchainSuffix, "toolchain")
}

func bundle(root, sub, name, suffix, what string) (string, error) {
	if name == "" {
		return "", &PathInvalidError{Path: filepath.Join(root, sub), What: what, Err: errors.New("empty name")}
	}
	p, err := Join(root, sub, name+suffix)
	if err != nil {
		return "", err
	}
	if err := dir(p, what); err != nil {
		return "", err
	}
	return p, nil
}

// BinDir returns <bundle>/usr/bin.
func BinDir(bundleDir string) (string, error) {
	return Join(bundleDir, "usr", "bin")
}

// LibDir returns <bundle>/usr/lib.
func LibDir(bundleDir string) (string, error) {
	return Join(bundleDir, "usr", "lib")
}

// BundleName turns an SDKROOT, TOOLCHAINS or flag value into a bundle name:
// the last path element with the bundle suffix removed. Dots inside the
// name are kept, so "iPhoneOS10.3.sdk" yields "iPhoneOS10.3".
func BundleName(s, suffix string) string {
	s = strings.TrimRight(s, string(filepath.Separator))
	if s == "" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(s), suffix)
}
