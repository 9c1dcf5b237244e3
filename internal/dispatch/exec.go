// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/invowk/xcrun/pkg/platform"
	"github.com/invowk/xcrun/pkg/types"
)

type (
	// Command is a fully resolved tool invocation.
	Command struct {
		Path string
		// Args includes argv[0].
		Args []string
		// Env replaces the inherited environment.
		Env []string
	}

	// Executor runs a resolved command.
	Executor interface {
		Exec(ctx context.Context, cmd Command) error
	}

	// ReplaceExecutor replaces the current process image. Exec returns
	// only on failure.
	ReplaceExecutor struct{}

	// SpawnExecutor runs the command as a child with the given stdio, waits
	// for it and reports a nonzero status as *ExitStatusError.
	SpawnExecutor struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// DefaultExecutor returns a ReplaceExecutor where the platform supports
// exec and a SpawnExecutor on the process stdio elsewhere.
func DefaultExecutor() Executor {
	if platform.SupportsExec() {
		return ReplaceExecutor{}
	}
	return SpawnExecutor{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Exec implements Executor.
func (s SpawnExecutor) Exec(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Path)
	cmd.Args = c.Args
	cmd.Env = c.Env
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitStatusError{Path: c.Path, Code: types.FromProcess(exitErr.ExitCode())}
		}
		return &ExecError{Path: c.Path, Err: err}
	}
	return nil
}
