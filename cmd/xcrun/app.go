// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/invowk/xcrun/internal/config"
	"github.com/invowk/xcrun/internal/devdir"
	"github.com/invowk/xcrun/internal/dispatch"
	"github.com/invowk/xcrun/internal/environ"
	"github.com/invowk/xcrun/internal/logging"
	"github.com/invowk/xcrun/internal/selection"
	"github.com/invowk/xcrun/pkg/types"
)

// Informational queries, answered in this order when several are requested.
const (
	QuerySDKPath          Query = "show-sdk-path"
	QuerySDKVersion       Query = "show-sdk-version"
	QueryTargetTriple     Query = "show-sdk-target-triple"
	QueryToolchainPath    Query = "show-sdk-toolchain-path"
	QueryToolchainVersion Query = "show-sdk-toolchain-version"
)

var allQueries = []Query{
	QuerySDKPath,
	QuerySDKVersion,
	QueryTargetTriple,
	QueryToolchainPath,
	QueryToolchainVersion,
}

type (
	// Query names a --show-* flag.
	Query string

	// App wires the resolution pipeline behind the CLI. It is the composition
	// root: cobra handlers build a Request and hand it to Invoke.
	App struct {
		Config    ConfigProvider
		Executor  dispatch.Executor
		LookupEnv func(string) (string, bool)
		// Self is this program's executable path.
		Self   string
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    ConfigProvider
		Executor  dispatch.Executor
		LookupEnv func(string) (string, bool)
		Self      string
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// Request captures one xcrun invocation.
	Request struct {
		Mode Mode
		// Tool is the bare tool name.
		Tool string
		// Args are passed to the tool untouched.
		Args    []string
		Queries []Query

		SDK       string
		Toolchain string
		Verbose   bool
		Log       bool
		NoCache   bool
		KillCache bool
		// ConfigPath is the --config value.
		ConfigPath string
	}

	// ConfigProvider loads xcrun's own settings.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.LookupEnv == nil {
		deps.LookupEnv = os.LookupEnv
	}
	if deps.Executor == nil {
		deps.Executor = dispatch.DefaultExecutor()
	}
	if deps.Self == "" {
		if self, err := os.Executable(); err == nil {
			deps.Self = self
		}
	}

	return &App{
		Config:    deps.Config,
		Executor:  deps.Executor,
		LookupEnv: deps.LookupEnv,
		Self:      deps.Self,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
}

// Invoke resolves the developer root and the active selection, then
// answers the queries, prints the tool path or runs the tool. Settings
// problems are reported as warnings and the defaults are used instead.
func (a *App) Invoke(ctx context.Context, req Request) error {
	cfg := a.loadSettings(ctx, req)
	verbose := req.Verbose || cfg.Verbose
	logMode := req.Log || cfg.Log
	logging.Setup(a.stderr, verbose)

	if req.NoCache || req.KillCache {
		slog.Warn("cache options are not supported and have no effect")
	}

	root, err := devdir.Locator{
		LookupEnv: a.LookupEnv,
		CacheFile: string(cfg.DeveloperDirCache),
	}.Locate()
	if err != nil {
		return err
	}
	slog.Debug("developer root", "path", root.Path, "source", root.Source)

	sel, err := selection.New(selection.Options{
		DeveloperRoot: root.Path,
		SDK:           req.SDK,
		Toolchain:     req.Toolchain,
		Verbose:       verbose,
		Log:           logMode,
		DefaultsFile:  defaultsFile(root.Path, cfg.DefaultsFile),
		LookupEnv:     a.LookupEnv,
	})
	if err != nil {
		return err
	}

	d := &dispatch.Dispatcher{
		Composer: environ.Composer{LookupEnv: a.LookupEnv},
		Executor: a.Executor,
		Out:      a.stdout,
		Self:     a.Self,
	}

	if len(req.Queries) > 0 {
		return a.answer(d, sel, req.Queries)
	}

	switch req.Mode {
	case ModeFind:
		path, err := d.Locate(sel, req.Tool)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, path)
		return nil
	case ModeRun:
		err := d.Run(ctx, sel, req.Tool, req.Args)
		var exitErr *dispatch.ExitStatusError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.Code}
		}
		return err
	default:
		return errNoTool
	}
}

func (a *App) loadSettings(ctx context.Context, req Request) *config.Config {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(req.ConfigPath)})
	if err != nil {
		// The handler is not installed yet; settings decide verbosity.
		logging.New(a.stderr, req.Verbose).Warn("ignoring settings", "error", formatErrorForDisplay(err, req.Verbose))
		if cfg, err = a.Config.Load(ctx, config.LoadOptions{EnvOnly: true}); err != nil {
			return config.DefaultConfig()
		}
	}
	return cfg
}

// answer prints the requested queries in their fixed order, stopping at
// the first failure.
func (a *App) answer(d *dispatch.Dispatcher, sel *selection.Context, queries []Query) error {
	requested := make(map[Query]bool, len(queries))
	for _, q := range queries {
		requested[q] = true
	}

	for _, q := range allQueries {
		if !requested[q] {
			continue
		}
		var (
			out string
			err error
		)
		switch q {
		case QuerySDKPath:
			out, err = d.SDKPath(sel)
		case QuerySDKVersion:
			out, err = d.SDKVersion(sel)
		case QueryTargetTriple:
			out, err = d.TargetTriple(sel)
		case QueryToolchainPath:
			out, err = d.ToolchainPath(sel)
		case QueryToolchainVersion:
			out, err = d.ToolchainVersion(sel)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, out)
	}
	return nil
}

// defaultsFile resolves the configured default selection file. Empty keeps
// the system-wide file.
func defaultsFile(root string, p config.FilePath) string {
	if p == "" || filepath.IsAbs(string(p)) {
		return string(p)
	}
	return filepath.Join(root, string(p))
}
