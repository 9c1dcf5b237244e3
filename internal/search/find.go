// SPDX-License-Identifier: MPL-2.0

package search

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/invowk/xcrun/internal/resolve"
)

// ErrCommandNotFound is returned when no search path entry holds the tool.
var ErrCommandNotFound = errors.New("command not found")

// CommandNotFoundError lists the directories that were searched.
type CommandNotFoundError struct {
	Name     string
	Searched SearchPath
}

// Error implements the error interface.
func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("unable to locate command %q (searched %s)", e.Name, strings.Join(e.Searched, ", "))
}

// Unwrap returns ErrCommandNotFound so callers can use errors.Is.
func (e *CommandNotFoundError) Unwrap() error { return ErrCommandNotFound }

// Find returns the first <entry>/<name> in sp that is an executable regular
// file. Directories and non-executable files are skipped.
func Find(sp SearchPath, name string) (string, error) {
	if name == "" || strings.ContainsRune(name, os.PathSeparator) {
		return "", &CommandNotFoundError{Name: name, Searched: sp}
	}

	for _, dir := range sp {
		candidate, err := resolve.Join(dir, name)
		if err != nil {
			return "", err
		}
		slog.Debug("checking directory", "dir", dir, "command", name)
		if isExecutable(candidate) {
			slog.Debug("found command", "path", candidate)
			return candidate, nil
		}
	}
	return "", &CommandNotFoundError{Name: name, Searched: sp}
}
