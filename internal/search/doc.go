// SPDX-License-Identifier: MPL-2.0

// Package search builds the ordered list of bin directories a tool is looked
// up in and locates tools within it.
package search
