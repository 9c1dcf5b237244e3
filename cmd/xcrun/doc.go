// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the xcrun command line.
//
// The same binary serves two entry points. Invoked as xcrun (or one of the
// xcrun_log, xcrun_verbose and xcrun_nocache aliases) it parses options and
// runs, finds or describes a tool. Invoked under any other name, usually
// through a symlink such as clang -> xcrun, it runs the tool of that name
// with the original arguments and the environment/default selection.
package cmd
