// SPDX-License-Identifier: MPL-2.0

// Command xcrun finds and runs developer tools for a selected SDK and
// toolchain.
package main

import cmd "github.com/invowk/xcrun/cmd/xcrun"

func main() {
	cmd.Execute()
}
