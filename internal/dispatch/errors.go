// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"fmt"

	"github.com/invowk/xcrun/pkg/types"
)

var (
	// ErrExec is returned when the located tool could not be started.
	ErrExec = errors.New("exec failed")

	// ErrSelfExec is returned when the located tool is this program.
	ErrSelfExec = errors.New("refusing to execute self")

	// ErrNoTargetTriple is returned by TargetTriple when none can be derived.
	ErrNoTargetTriple = errors.New("target triple unavailable")
)

type (
	// ExecError wraps the OS error of a failed exec.
	ExecError struct {
		Path string
		Err  error
	}

	// ExitStatusError carries a spawned tool's nonzero exit status.
	ExitStatusError struct {
		Path string
		Code types.ExitCode
	}
)

// Error implements the error interface.
func (e *ExecError) Error() string {
	return fmt.Sprintf("can't exec %q: %v", e.Path, e.Err)
}

// Unwrap returns ErrExec and the OS error.
func (e *ExecError) Unwrap() []error { return []error{ErrExec, e.Err} }

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("%s exited with status %s", e.Path, e.Code)
}
