// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment variable management (MustSetenv, MustUnsetenv),
// directory creation (MustMkdirAll), and DevRoot, a builder for
// developer root trees with SDK and toolchain bundles.
package testutil
