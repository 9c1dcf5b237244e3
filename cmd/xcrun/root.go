// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/invowk/xcrun/internal/issue"
	"github.com/invowk/xcrun/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// rootFlags holds the parsed xcrun options.
	rootFlags struct {
		sdk        string
		toolchain  string
		configPath string
		verbose    bool
		log        bool
		noCache    bool
		killCache  bool
		run        string
		find       string
		queries    map[Query]*bool
	}

	// runState carries the pipeline result out of RunE so that fang only
	// ever reports usage errors.
	runState struct {
		err     error
		verbose bool
	}
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs xcrun with the process arguments and exits with its status.
// This is called by main.main().
func Execute() {
	os.Exit(int(run(context.Background(), os.Args, Dependencies{})))
}

// run is Execute without the exit, taking the full argv including the
// program name.
func run(ctx context.Context, argv []string, deps Dependencies) types.ExitCode {
	app := NewApp(deps)

	var argv0 string
	if len(argv) > 0 {
		argv0, argv = argv[0], argv[1:]
	}

	p := personalityOf(argv0)
	if p.multicall {
		err := app.Invoke(ctx, Request{Mode: ModeRun, Tool: p.tool, Args: argv})
		if err != nil {
			renderError(app.stderr, err, false)
		}
		return exitCodeOf(err)
	}

	inv := splitArgs(argv)
	st := &runState{}
	root := newRootCommand(app, inv, p, st)
	if len(argv) == 0 {
		// A bare invocation prints usage and succeeds.
		root.SetArgs([]string{"--help"})
	} else {
		root.SetArgs(inv.flagArgs)
	}
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	// Completions and manpage subcommands would shadow tools of the same name.
	if err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
		fang.WithErrorHandler(usageErrorHandler),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		return types.ExitFailure
	}

	if st.err != nil {
		renderError(app.stderr, st.err, st.verbose)
	}
	return exitCodeOf(st.err)
}

// newRootCommand builds the xcrun command for one invocation. The tool and
// its arguments were split off argv beforehand and arrive through inv.
func newRootCommand(app *App, inv invocation, p personality, st *runState) *cobra.Command {
	f := &rootFlags{queries: make(map[Query]*bool, len(allQueries))}

	root := &cobra.Command{
		Use:   "xcrun [options] [--] <tool> [tool arguments]",
		Short: "Find and run developer tools for the selected SDK and toolchain",
		Long: TitleStyle.Render("xcrun") + SubtitleStyle.Render(" - run developer tools from versioned SDKs and toolchains") + `

xcrun locates a tool in the developer root (DEVELOPER_DIR or ~/.xcdev.dat),
in the selected SDK and toolchain, and runs it with SDKROOT, PATH,
TARGET_TRIPLE and a deployment target set for that selection.

The SDK and toolchain come from --sdk/--toolchain, then SDKROOT/TOOLCHAINS,
then /etc/xcrun.ini. Everything after the tool name is passed to the tool.

` + SubtitleStyle.Render("Examples:") + `
  ` + CmdStyle.Render("xcrun clang -c hello.c") + `                   Run clang for the default SDK
  ` + CmdStyle.Render("xcrun --sdk iPhoneOS10.3 --find ld") + `       Print the path of ld
  ` + CmdStyle.Render("xcrun --sdk /opt/Custom.sdk clang x.c") + `    Use an SDK outside the developer root
  ` + CmdStyle.Render("xcrun --show-sdk-target-triple") + `           Print the derived target triple`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := f.request(inv, p)
			st.verbose = req.Verbose
			if err != nil {
				st.err = err
				return nil
			}
			st.err = app.Invoke(cmd.Context(), req)
			return nil
		},
	}

	flags := root.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "trace developer root, SDK and toolchain resolution")
	flags.StringVar(&f.sdk, "sdk", "", "SDK name or absolute path to an SDK bundle")
	flags.StringVar(&f.toolchain, "toolchain", "", "toolchain name or absolute path to a toolchain bundle")
	flags.BoolVarP(&f.log, "log", "l", false, "print the command line before running the tool")
	flags.StringVarP(&f.find, "find", "f", "", "print the path of `tool` instead of running it")
	flags.StringVarP(&f.run, "run", "r", "", "run `tool` (the same as naming it after the options)")
	flags.BoolVarP(&f.noCache, "no-cache", "n", false, "accepted for compatibility; has no effect")
	flags.BoolVarP(&f.killCache, "kill-cache", "k", false, "accepted for compatibility; has no effect")
	flags.StringVar(&f.configPath, "config", "", "settings file (default is <config dir>/xcrun/config.cue)")
	for _, q := range allQueries {
		f.queries[q] = flags.Bool(string(q), false, queryUsage[q])
	}

	return root
}

var queryUsage = map[Query]string{
	QuerySDKPath:          "print the path of the selected SDK",
	QuerySDKVersion:       "print the version of the selected SDK",
	QueryTargetTriple:     "print the target triple derived from the selected SDK",
	QueryToolchainPath:    "print the path of the active toolchain",
	QueryToolchainVersion: "print the version of the active toolchain",
}

// request validates the parsed options against the split-off tool.
func (f *rootFlags) request(inv invocation, p personality) (Request, error) {
	req := Request{
		Mode:       inv.mode,
		Args:       inv.toolArgs,
		SDK:        f.sdk,
		Toolchain:  f.toolchain,
		Verbose:    f.verbose || p.verbose,
		Log:        f.log || p.log,
		NoCache:    f.noCache,
		KillCache:  f.killCache,
		ConfigPath: f.configPath,
	}
	for _, q := range allQueries {
		if *f.queries[q] {
			req.Queries = append(req.Queries, q)
		}
	}

	switch {
	case inv.mode != ModeNone && len(req.Queries) > 0:
		return req, usageError(errToolAndQuery)
	case inv.mode != ModeNone && inv.tool == "":
		return req, usageError(errNoTool)
	case inv.mode == ModeNone && len(req.Queries) > 0:
		return req, nil
	case inv.mode == ModeNone && (f.verbose || f.log):
		return req, usageError(errVerboseNoTool)
	case inv.mode == ModeNone:
		return req, usageError(errNoTool)
	}

	req.Tool = toolName(inv.tool)
	return req, nil
}

func usageError(err error) error {
	return issue.NewErrorContext().
		WithOperation("parse arguments").
		WithSuggestion("Run 'xcrun --help' for usage").
		Wrap(err).
		BuildError()
}

// usageErrorHandler prints flag parsing errors in xcrun's diagnostic format.
func usageErrorHandler(w io.Writer, _ fang.Styles, err error) {
	fmt.Fprintf(w, "xcrun: %s %s\n", ErrorStyle.Render("error:"), err)
}
