// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestFilePath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value FilePath
		want  bool
	}{
		{"", true},
		{"/etc/xcrun.ini", true},
		{"relative.ini", true},
		{" ", false},
		{"\t\n", false},
	}

	for _, tt := range tests {
		valid, errs := tt.value.IsValid()
		if valid != tt.want {
			t.Errorf("FilePath(%q).IsValid() = %v, want %v", tt.value, valid, tt.want)
		}
		if !valid && !errors.Is(errs[0], ErrInvalidFilePath) {
			t.Errorf("FilePath(%q) error should wrap ErrInvalidFilePath, got %v", tt.value, errs[0])
		}
	}
}

func TestConfig_IsValid_CollectsFieldErrors(t *testing.T) {
	t.Parallel()

	cfg := Config{DefaultsFile: " ", DeveloperDirCache: "\t"}
	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("expected invalid config")
	}

	var ce *InvalidConfigError
	if !errors.As(errs[0], &ce) {
		t.Fatalf("expected *InvalidConfigError, got %T", errs[0])
	}
	if !errors.Is(ce, ErrInvalidConfig) {
		t.Error("InvalidConfigError should wrap ErrInvalidConfig")
	}
	if len(ce.FieldErrors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(ce.FieldErrors))
	}
	var fe *InvalidFilePathError
	if !errors.As(ce.FieldErrors[1], &fe) || fe.Key != "developer_dir_cache" {
		t.Errorf("second field error = %v, want developer_dir_cache", ce.FieldErrors[1])
	}
}
