// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package search

import "os"

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
