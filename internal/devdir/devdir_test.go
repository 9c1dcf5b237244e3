// SPDX-License-Identifier: MPL-2.0

package devdir

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLocate_EnvWins(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	if err := WriteCache(DefaultCacheFile(home), "/from/cache"); err != nil {
		t.Fatal(err)
	}

	l := Locator{LookupEnv: envMap(map[string]string{
		EnvDeveloperDir: "/from/env",
		"HOME":          home,
	})}
	root, err := l.Locate()
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if root.Path != "/from/env" || root.Source != SourceEnv {
		t.Errorf("Locate() = %+v, want /from/env from env", root)
	}
}

func TestLocate_Cache(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	cache := DefaultCacheFile(home)
	if err := WriteCache(cache, "/opt/dev"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unset developer dir", map[string]string{"HOME": home}},
		{"empty developer dir", map[string]string{EnvDeveloperDir: "", "HOME": home}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root, err := Locator{LookupEnv: envMap(tt.env)}.Locate()
			if err != nil {
				t.Fatalf("Locate() error = %v", err)
			}
			want := Root{Path: "/opt/dev", Source: SourceCache, CacheFile: cache}
			if root != want {
				t.Errorf("Locate() = %+v, want %+v", root, want)
			}
		})
	}
}

func TestLocate_CacheOverride(t *testing.T) {
	t.Parallel()

	cache := filepath.Join(t.TempDir(), "custom.dat")
	if err := WriteCache(cache, "/custom"); err != nil {
		t.Fatal(err)
	}

	root, err := Locator{LookupEnv: envMap(nil), CacheFile: cache}.Locate()
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if root.Path != "/custom" {
		t.Errorf("Locate().Path = %q, want /custom", root.Path)
	}
}

func TestLocate_NotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		env   map[string]string
		cause error
	}{
		{"no home", map[string]string{}, nil},
		{"no cache file", map[string]string{"HOME": t.TempDir()}, fs.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Locator{LookupEnv: envMap(tt.env)}.Locate()
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("Locate() error = %v, want ErrNotFound", err)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("Locate() error = %v, want cause %v", err, tt.cause)
			}
		})
	}
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []string{
		"/Developer",
		"/path with spaces/dev",
		"/trailing/newline\n",
		"  /leading/space",
	}

	for _, want := range tests {
		path := filepath.Join(t.TempDir(), CacheFileName)
		if err := WriteCache(path, want); err != nil {
			t.Fatalf("WriteCache(%q) error = %v", want, err)
		}
		got, err := ReadCache(path)
		if err != nil {
			t.Fatalf("ReadCache() error = %v", err)
		}
		if got != want {
			t.Errorf("ReadCache() = %q, want %q", got, want)
		}
	}
}

func TestReadCache_Empty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), CacheFileName)
	if err := WriteCache(path, ""); err == nil {
		t.Error("WriteCache(\"\") returned nil error")
	}
	if _, err := ReadCache(path); err == nil {
		t.Error("ReadCache(missing) returned nil error")
	}
}
