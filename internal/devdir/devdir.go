// SPDX-License-Identifier: MPL-2.0

// Package devdir locates the developer root: the directory holding the
// SDKs/ and Toolchains/ trees.
//
// DEVELOPER_DIR always wins. Without it the root is read from a cache file
// in the user's home directory. The cache content is used verbatim; a
// trailing newline written by hand becomes part of the path.
package devdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvDeveloperDir names the developer root directly.
	EnvDeveloperDir = "DEVELOPER_DIR"

	// CacheFileName is the cache file name inside $HOME.
	CacheFileName = ".xcdev.dat"
)

// SourceEnv and SourceCache tell where a Root came from.
const (
	SourceEnv Source = iota + 1
	SourceCache
)

// ErrNotFound is returned when no developer root can be determined.
var ErrNotFound = errors.New("developer root not found")

type (
	// Source tells where the developer root was found.
	Source int

	// Root is a located developer root.
	Root struct {
		Path   string
		Source Source
		// CacheFile is the cache consulted, empty when DEVELOPER_DIR was used.
		CacheFile string
	}

	// Locator finds the developer root.
	Locator struct {
		// LookupEnv defaults to os.LookupEnv.
		LookupEnv func(string) (string, bool)
		// CacheFile overrides $HOME/.xcdev.dat.
		CacheFile string
	}

	// NotFoundError explains why no developer root was found.
	NotFoundError struct {
		CacheFile string
		Err       error
	}
)

// String returns the source name used in diagnostics.
func (s Source) String() string {
	switch s {
	case SourceEnv:
		return EnvDeveloperDir
	case SourceCache:
		return "cache"
	default:
		return "unknown"
	}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.CacheFile == "" {
		return fmt.Sprintf("%s is not set and no cache file is available: %v", EnvDeveloperDir, e.Err)
	}
	return fmt.Sprintf("%s is not set and cache %s is unusable: %v", EnvDeveloperDir, e.CacheFile, e.Err)
}

// Unwrap returns ErrNotFound and the underlying cause.
func (e *NotFoundError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNotFound}
	}
	return []error{ErrNotFound, e.Err}
}

// Locate returns the developer root from DEVELOPER_DIR or, failing that,
// from the cache file. An empty DEVELOPER_DIR counts as unset.
func (l Locator) Locate() (Root, error) {
	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if dir, ok := lookup(EnvDeveloperDir); ok && dir != "" {
		return Root{Path: dir, Source: SourceEnv}, nil
	}

	cache := l.CacheFile
	if cache == "" {
		home, ok := lookup("HOME")
		if !ok || home == "" {
			return Root{}, &NotFoundError{Err: errors.New("HOME is not set")}
		}
		cache = DefaultCacheFile(home)
	}

	dir, err := ReadCache(cache)
	if err != nil {
		return Root{}, &NotFoundError{CacheFile: cache, Err: err}
	}
	return Root{Path: dir, Source: SourceCache, CacheFile: cache}, nil
}

// DefaultCacheFile returns the cache file location for a home directory.
func DefaultCacheFile(home string) string {
	return filepath.Join(home, CacheFileName)
}

// ReadCache returns the cache file content unchanged.
func ReadCache(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New("cache file is empty")
	}
	return string(data), nil
}

// WriteCache stores root in the cache file so ReadCache returns it byte for byte.
func WriteCache(path, root string) error {
	if root == "" {
		return errors.New("developer root must not be empty")
	}
	return os.WriteFile(path, []byte(root), 0o644)
}
