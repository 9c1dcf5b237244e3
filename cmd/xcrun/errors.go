// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/invowk/xcrun/internal/devdir"
	"github.com/invowk/xcrun/internal/dispatch"
	"github.com/invowk/xcrun/internal/environ"
	"github.com/invowk/xcrun/internal/issue"
	"github.com/invowk/xcrun/internal/metadata"
	"github.com/invowk/xcrun/internal/resolve"
	"github.com/invowk/xcrun/internal/search"
)

// Usage errors.
var (
	errNoTool        = errors.New("no tool specified")
	errToolAndQuery  = errors.New("a tool cannot be combined with --show-* queries")
	errVerboseNoTool = errors.New("--verbose and --log need a tool to run or find")
)

// classifyError turns a pipeline failure into an ActionableError linked to
// the issue catalog. ActionableErrors pass through unchanged.
func classifyError(err error) *issue.ActionableError {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae
	}

	ctx := issue.NewErrorContext().Wrap(err)

	var (
		notFound  *metadata.ConfigNotFoundError
		parseErr  *metadata.ConfigParseError
		pathErr   *resolve.PathInvalidError
		cmdErr    *search.CommandNotFoundError
		execErr   *dispatch.ExecError
		devDirErr *devdir.NotFoundError
	)
	switch {
	case errors.As(err, &devDirErr):
		ctx.WithOperation("locate developer directory").
			WithResource(devDirErr.CacheFile).
			WithIssue(issue.DeveloperDirNotFoundId).
			WithSuggestion("Set " + devdir.EnvDeveloperDir + " to the directory holding SDKs/ and Toolchains/")
	case errors.As(err, &notFound):
		ctx.WithOperation("load " + notFound.Kind.String() + " metadata").
			WithIssue(issue.ConfigNotFoundId).
			WithSuggestion("Select an SDK and toolchain with --sdk and --toolchain")
	case errors.As(err, &parseErr):
		ctx.WithOperation("load " + parseErr.Kind.String() + " metadata").
			WithIssue(issue.ConfigParseErrorId).
			WithSuggestion("Add the missing keys to " + parseErr.Path)
	case errors.As(err, &pathErr):
		what := pathErr.What
		if what == "" {
			what = "path"
		}
		ctx.WithOperation("resolve " + what).
			WithIssue(issue.PathInvalidId).
			WithSuggestion("Check the SDK and toolchain names against the SDKs/ and Toolchains/ directories")
	case errors.Is(err, resolve.ErrPathTooLong), errors.Is(err, search.ErrSearchPathTooLong), errors.Is(err, environ.ErrValueTooLong):
		ctx.WithOperation("build tool paths").
			WithIssue(issue.PathInvalidId).
			WithSuggestion("Use a shorter developer root or inherited PATH")
	case errors.As(err, &cmdErr):
		ctx.WithOperation("find tool").
			WithIssue(issue.CommandNotFoundId).
			WithSuggestion("Run with --verbose to see which SDK and toolchain were selected")
	case errors.Is(err, dispatch.ErrNoTargetTriple):
		ctx.WithOperation("derive target triple").
			WithIssue(issue.TargetTripleUnavailableId).
			WithSuggestion("Set TARGET_TRIPLE or add a deployment target and default_arch to the SDK info.ini")
	case errors.As(err, &execErr):
		ctx.WithOperation("execute tool").
			WithIssue(issue.ExecFailedId)
		if errors.Is(err, dispatch.ErrSelfExec) {
			ctx.WithSuggestion("The tool resolved to xcrun itself; install the real tool in the selected toolchain")
		}
	default:
		ctx.WithOperation("run xcrun")
	}
	return ctx.Build()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderError prints err as "xcrun: error: ..." on w. Verbose output adds
// the error chain and the catalog entry. Errors that were already reported
// are not printed again.
func renderError(w io.Writer, err error, verbose bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	ae := classifyError(err)
	fmt.Fprintf(w, "xcrun: %s %s\n", ErrorStyle.Render("error:"), ae.Format(verbose))
	if !verbose || ae.Issue == 0 {
		return
	}
	rendered := ae.RenderIssue(issueStyle())
	if rendered == "" {
		slog.Warn("failed to render issue catalog entry", "issueID", ae.Issue)
		return
	}
	fmt.Fprint(w, rendered)
}

// issueStyle picks the glamour style; GLAMOUR_STYLE wins over detection.
func issueStyle() string {
	if s := os.Getenv("GLAMOUR_STYLE"); s != "" {
		return s
	}
	return "auto"
}
