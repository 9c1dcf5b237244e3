// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfigNotFound is the sentinel error wrapped by ConfigNotFoundError.
	ErrConfigNotFound = errors.New("metadata file not found")
	// ErrConfigParse is the sentinel error wrapped by ConfigParseError.
	ErrConfigParse = errors.New("malformed metadata file")
)

type (
	// ConfigNotFoundError is returned when a metadata file does not exist.
	// It wraps ErrConfigNotFound for errors.Is() compatibility.
	ConfigNotFoundError struct {
		Path string
		Kind Kind
	}

	// ConfigParseError is returned when a metadata file cannot be read as a
	// complete record: a required key is missing or the file is unreadable.
	// It wraps ErrConfigParse for errors.Is() compatibility.
	ConfigParseError struct {
		Path string
		Kind Kind
		// Missing lists required keys as "SECTION.key".
		Missing []string
		// Err is the underlying read error, if any.
		Err error
	}
)

// Error implements the error interface.
func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("%s metadata file %q does not exist", e.Kind, e.Path)
}

// Unwrap returns ErrConfigNotFound so callers can use errors.Is for programmatic detection.
func (e *ConfigNotFoundError) Unwrap() error { return ErrConfigNotFound }

// Error implements the error interface.
func (e *ConfigParseError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "%s metadata file %q is malformed", e.Kind, e.Path)
	if len(e.Missing) > 0 {
		msg.WriteString(": missing ")
		msg.WriteString(strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Err.Error())
	}
	return msg.String()
}

// Unwrap returns ErrConfigParse and the underlying read error.
func (e *ConfigParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfigParse, e.Err}
	}
	return []error{ErrConfigParse}
}
