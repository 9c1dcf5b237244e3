// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared by the command and its
// internal packages: process exit codes and user-supplied filesystem paths.
package types
