// SPDX-License-Identifier: MPL-2.0

// Package dispatch locates a tool for a selection, composes its environment
// and hands it to an Executor. It also answers the SDK and toolchain
// queries.
//
// All resolution happens before the Executor is called; a failure at any
// step returns without running anything.
package dispatch
