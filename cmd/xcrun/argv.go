// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/invowk/xcrun/pkg/platform"
)

// What to do with the tool named on the command line.
const (
	ModeNone Mode = iota
	// ModeRun executes the tool (positional tool name or --run).
	ModeRun
	// ModeFind prints the tool's path (--find).
	ModeFind
)

type (
	// Mode selects between running and finding a tool.
	Mode int

	// invocation is the part of argv that cobra never sees: the tool and
	// everything after it.
	invocation struct {
		// flagArgs are the xcrun options handed to cobra.
		flagArgs []string
		mode     Mode
		tool     string
		toolArgs []string
	}

	// personality is what the program name selects.
	personality struct {
		// multicall is true when the program name is a tool name.
		multicall bool
		tool      string
		log       bool
		verbose   bool
	}
)

// valueFlags take a separate value argument that must not be mistaken for
// the tool name.
var valueFlags = map[string]bool{
	"--sdk":       true,
	"--toolchain": true,
	"--config":    true,
}

// splitArgs separates xcrun options from the tool invocation. The first
// positional argument, the argument after "--", or the value of
// -r/--run/-f/--find is the tool; everything after it belongs to the tool
// untouched, even when it looks like an xcrun option.
func splitArgs(args []string) invocation {
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			inv := invocation{flagArgs: args[:i]}
			if i+1 < len(args) {
				inv.mode, inv.tool, inv.toolArgs = ModeRun, args[i+1], args[i+2:]
			}
			return inv
		}

		if mode, value, hasValue, ok := toolFlag(arg); ok {
			inv := invocation{flagArgs: args[:i], mode: mode}
			rest := args[i+1:]
			if !hasValue {
				if len(rest) == 0 {
					// Let cobra report the missing value.
					inv.flagArgs = args
					inv.mode = ModeNone
					return inv
				}
				value, rest = rest[0], rest[1:]
			}
			inv.tool, inv.toolArgs = value, rest
			return inv
		}

		if !strings.HasPrefix(arg, "-") || arg == "-" {
			return invocation{flagArgs: args[:i], mode: ModeRun, tool: arg, toolArgs: args[i+1:]}
		}

		if valueFlags[arg] {
			i++
		}
	}
	return invocation{flagArgs: args}
}

// toolFlag recognizes -r/--run and -f/--find in their separate-value and
// --run=<tool> forms.
func toolFlag(arg string) (mode Mode, value string, hasValue, ok bool) {
	name, value, hasValue := strings.Cut(arg, "=")
	switch name {
	case "-r", "--run":
		return ModeRun, value, hasValue, true
	case "-f", "--find":
		return ModeFind, value, hasValue, true
	}
	return ModeNone, "", false, false
}

// personalityOf maps the program name to its behavior.
func personalityOf(argv0 string) personality {
	name := filepath.Base(argv0)
	if runtime.GOOS == platform.Windows {
		name = strings.TrimSuffix(strings.ToLower(name), ".exe")
	}
	switch name {
	case "xcrun", "xcrun_nocache", "", ".":
		return personality{}
	case "xcrun_log":
		return personality{log: true}
	case "xcrun_verbose":
		return personality{verbose: true}
	default:
		return personality{multicall: true, tool: name}
	}
}

// toolName reduces a tool argument to its base name.
func toolName(s string) string {
	return filepath.Base(s)
}
