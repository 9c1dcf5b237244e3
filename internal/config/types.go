// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFilePath is returned when a FilePath value is whitespace-only.
	ErrInvalidFilePath = errors.New("invalid file path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// FilePath is an optional filesystem path setting.
	// The zero value ("") is valid and means "use the built-in location".
	// Non-zero values must not be whitespace-only.
	FilePath string

	// InvalidFilePathError is returned when a FilePath value is
	// non-empty but whitespace-only.
	InvalidFilePathError struct {
		Key   string
		Value FilePath
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds xcrun's own settings.
	Config struct {
		// Verbose traces resolution to stderr, as if --verbose were given.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Log prints each command before it is run, as if --log were given.
		Log bool `json:"log" mapstructure:"log"`
		// DefaultsFile replaces /etc/xcrun.ini. A relative path is taken
		// relative to the developer root.
		DefaultsFile FilePath `json:"defaults_file" mapstructure:"defaults_file"`
		// DeveloperDirCache replaces ~/.xcdev.dat.
		DeveloperDirCache FilePath `json:"developer_dir_cache" mapstructure:"developer_dir_cache"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{}
}

// IsValid returns whether the Config has valid fields.
// Bool fields need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.DefaultsFile.validate("defaults_file"); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.DeveloperDirCache.validate("developer_dir_cache"); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the FilePath.
func (p FilePath) String() string { return string(p) }

// IsValid returns whether the FilePath is valid.
func (p FilePath) IsValid() (bool, []error) {
	return p.validate("")
}

func (p FilePath) validate(key string) (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidFilePathError{Key: key, Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidFilePathError.
func (e *InvalidFilePathError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid file path %q: non-empty value must not be whitespace-only", e.Value)
	}
	return fmt.Sprintf("%s: invalid file path %q: non-empty value must not be whitespace-only", e.Key, e.Value)
}

// Unwrap returns ErrInvalidFilePath for errors.Is() compatibility.
func (e *InvalidFilePathError) Unwrap() error { return ErrInvalidFilePath }
