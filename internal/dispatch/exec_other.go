// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package dispatch

import (
	"context"
	"errors"
)

// Exec implements Executor. Process replacement is not available here.
func (ReplaceExecutor) Exec(_ context.Context, c Command) error {
	return &ExecError{Path: c.Path, Err: errors.ErrUnsupported}
}
