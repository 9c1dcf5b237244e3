// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/invowk/xcrun/internal/environ"
	"github.com/invowk/xcrun/internal/metadata"
	"github.com/invowk/xcrun/internal/search"
	"github.com/invowk/xcrun/internal/selection"
)

// Dispatcher resolves and runs tools.
type Dispatcher struct {
	Composer environ.Composer
	// Executor defaults to DefaultExecutor().
	Executor Executor
	// Out receives log-mode output. Defaults to os.Stdout.
	Out io.Writer
	// Self is this program's executable. A located tool that is the same
	// file is refused. Empty disables the check.
	Self string
}

// Locate returns the absolute path of tool for sel without running it.
func (d *Dispatcher) Locate(sel *selection.Context, tool string) (string, error) {
	sp, err := search.Build(sel)
	if err != nil {
		return "", err
	}
	return search.Find(sp, tool)
}

// Run locates tool, composes its environment and executes it with args.
// argv[0] of the tool is the tool name. With a ReplaceExecutor Run returns
// only on failure.
func (d *Dispatcher) Run(ctx context.Context, sel *selection.Context, tool string, args []string) error {
	res, err := search.Resolve(sel)
	if err != nil {
		return err
	}
	path, err := search.Find(res.Path, tool)
	if err != nil {
		return err
	}
	if d.isSelf(path) {
		return &ExecError{Path: path, Err: ErrSelfExec}
	}

	sdkDir, err := sel.SDKDir()
	if err != nil {
		return err
	}
	sdk := res.SDK
	if sdk == nil {
		if sdk, err = sel.SDKRecord(); err != nil {
			return err
		}
	}
	// The SDK's own toolchain only widens the search path; the child runs
	// under the active toolchain, the one the toolchain queries report.
	toolchainDir, err := sel.ToolchainDir()
	if err != nil {
		return err
	}

	env, err := d.Composer.Compose(environ.Request{
		DeveloperRoot: sel.Root(),
		SDKDir:        sdkDir,
		ToolchainDir:  toolchainDir,
		SDK:           sdk,
	})
	if err != nil {
		return err
	}

	cmd := Command{
		Path: path,
		Args: append([]string{tool}, args...),
		Env:  env.Environ(),
	}
	if sel.Log() {
		d.logCommand(cmd)
	}
	slog.Debug("executing", "path", path, "args", len(args))

	executor := d.Executor
	if executor == nil {
		executor = DefaultExecutor()
	}
	return executor.Exec(ctx, cmd)
}

func (d *Dispatcher) out() io.Writer {
	if d.Out == nil {
		return os.Stdout
	}
	return d.Out
}

func (d *Dispatcher) logCommand(cmd Command) {
	words := make([]string, 0, len(cmd.Args))
	words = append(words, quote(cmd.Path))
	for _, a := range cmd.Args[1:] {
		words = append(words, quote(a))
	}
	fmt.Fprintf(d.out(), "xcrun: info: invoking command:\n\t%s\n", strings.Join(words, " "))
}

func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		// Only strings with bytes bash cannot represent fail; print them as Go literals.
		return fmt.Sprintf("%q", s)
	}
	return q
}

func (d *Dispatcher) isSelf(path string) bool {
	if d.Self == "" {
		return false
	}
	a, err := os.Stat(path)
	if err != nil {
		return false
	}
	b, err := os.Stat(d.Self)
	if err != nil {
		return false
	}
	return os.SameFile(a, b)
}

// SDKPath returns the active SDK directory.
func (d *Dispatcher) SDKPath(sel *selection.Context) (string, error) {
	return sel.SDKDir()
}

// SDKVersion returns "<name> SDK version <version>".
func (d *Dispatcher) SDKVersion(sel *selection.Context) (string, error) {
	sdk, err := requireSDK(sel)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s SDK version %s", sdk.Name, sdk.Version), nil
}

// ToolchainPath returns the active toolchain directory.
func (d *Dispatcher) ToolchainPath(sel *selection.Context) (string, error) {
	return sel.ToolchainDir()
}

// ToolchainVersion returns "<sdk> SDK Toolchain version <version> (<toolchain>)".
func (d *Dispatcher) ToolchainVersion(sel *selection.Context) (string, error) {
	sdk, err := requireSDK(sel)
	if err != nil {
		return "", err
	}
	tc, err := sel.ToolchainRecord()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s SDK Toolchain version %s (%s)", sdk.Name, tc.Version, tc.Name), nil
}

// TargetTriple returns the inherited or derived target triple of the active SDK.
func (d *Dispatcher) TargetTriple(sel *selection.Context) (string, error) {
	sdk, err := sel.SDKRecord()
	if err != nil {
		return "", err
	}
	t, ok := d.Composer.TargetTriple(sdk)
	if !ok {
		dir, _ := sel.SDKDir()
		return "", fmt.Errorf("%w for %s", ErrNoTargetTriple, dir)
	}
	return t, nil
}

func requireSDK(sel *selection.Context) (*metadata.SDKRecord, error) {
	sdk, err := sel.SDKRecord()
	if err != nil {
		return nil, err
	}
	if sdk == nil {
		dir, _ := sel.SDKDir()
		return nil, &metadata.ConfigNotFoundError{Path: metadata.InfoFile(dir), Kind: metadata.KindSDK}
	}
	return sdk, nil
}
