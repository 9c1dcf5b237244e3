// SPDX-License-Identifier: MPL-2.0

//go:build unix

package dispatch

import (
	"context"

	"golang.org/x/sys/unix"
)

// Exec implements Executor.
func (ReplaceExecutor) Exec(_ context.Context, c Command) error {
	err := unix.Exec(c.Path, c.Args, c.Env)
	return &ExecError{Path: c.Path, Err: err}
}
