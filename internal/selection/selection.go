// SPDX-License-Identifier: MPL-2.0

// Package selection decides which SDK and toolchain an invocation works
// against.
//
// A name given on the command line wins over an absolute path given on the
// command line, which wins over SDKROOT/TOOLCHAINS, which win over the
// system-wide default selection file. The result is an immutable Context
// built once per invocation.
package selection

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/invowk/xcrun/internal/metadata"
	"github.com/invowk/xcrun/internal/resolve"
)

const (
	// EnvSDKRoot selects the SDK by name or path.
	EnvSDKRoot = "SDKROOT"
	// EnvToolchains selects the toolchain by name or path.
	EnvToolchains = "TOOLCHAINS"
)

// Where a selected name came from.
const (
	SourceNone Source = iota
	SourceFlag
	SourcePath
	SourceEnv
	SourceDefaults
)

type (
	// Source records where a selection was taken from.
	Source int

	// Options are the caller-supplied inputs to New.
	Options struct {
		// DeveloperRoot must name an existing directory.
		DeveloperRoot string
		// SDK is the --sdk value: a bundle name or an absolute path.
		SDK string
		// Toolchain is the --toolchain value: a bundle name or an absolute path.
		Toolchain string
		Verbose   bool
		Log       bool
		// DefaultsFile defaults to metadata.DefaultSelectionFile.
		DefaultsFile string
		// LookupEnv defaults to os.LookupEnv.
		LookupEnv func(string) (string, bool)
	}

	// Context is the resolved selection for one invocation.
	Context struct {
		root              string
		sdkName           string
		toolchainName     string
		sdkSource         Source
		toolchainSource   Source
		explicitSDK       bool
		explicitToolchain bool
		altSDKPath        string
		altToolchainPath  string
		verbose           bool
		log               bool
	}
)

// String returns the source name used in diagnostics.
func (s Source) String() string {
	switch s {
	case SourceFlag:
		return "flag"
	case SourcePath:
		return "path"
	case SourceEnv:
		return "environment"
	case SourceDefaults:
		return "defaults"
	default:
		return "none"
	}
}

// New validates the developer root and resolves the active SDK and
// toolchain. The default selection file is read only when a flag or an
// environment variable leaves a name unset, and any failure reading it is
// returned.
func New(opts Options) (*Context, error) {
	if err := resolve.Dir(opts.DeveloperRoot); err != nil {
		return nil, err
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	c := &Context{
		root:    opts.DeveloperRoot,
		verbose: opts.Verbose,
		log:     opts.Log,
	}

	var err error
	if c.sdkName, c.altSDKPath, c.sdkSource, err = fromFlag(opts.SDK, resolve.SDKSuffix); err != nil {
		return nil, err
	}
	c.explicitSDK = c.sdkSource == SourceFlag

	if c.toolchainName, c.altToolchainPath, c.toolchainSource, err = fromFlag(opts.Toolchain, resolve.ToolchainSuffix); err != nil {
		return nil, err
	}
	c.explicitToolchain = c.toolchainSource == SourceFlag

	if c.sdkSource == SourceNone {
		if v, ok := lookup(EnvSDKRoot); ok && v != "" {
			c.sdkName, c.sdkSource = resolve.BundleName(v, resolve.SDKSuffix), SourceEnv
		}
	}
	if c.toolchainSource == SourceNone {
		if v, ok := lookup(EnvToolchains); ok && v != "" {
			c.toolchainName, c.toolchainSource = resolve.BundleName(v, resolve.ToolchainSuffix), SourceEnv
		}
	}

	if c.sdkSource == SourceNone || c.toolchainSource == SourceNone {
		path := opts.DefaultsFile
		if path == "" {
			path = metadata.DefaultSelectionFile
		}
		defaults, err := metadata.LoadDefaults(path)
		if err != nil {
			return nil, err
		}
		if c.sdkSource == SourceNone {
			c.sdkName, c.sdkSource = defaults.SDK, SourceDefaults
		}
		if c.toolchainSource == SourceNone {
			c.toolchainName, c.toolchainSource = defaults.Toolchain, SourceDefaults
		}
	}

	slog.Debug("selection resolved",
		"developer_dir", c.root,
		"sdk", c.sdkName, "sdk_source", c.sdkSource, "sdk_path", c.altSDKPath,
		"toolchain", c.toolchainName, "toolchain_source", c.toolchainSource, "toolchain_path", c.altToolchainPath)

	return c, nil
}

// fromFlag splits a flag value into a bundle name or a validated absolute path.
func fromFlag(value, suffix string) (name, path string, src Source, err error) {
	switch {
	case value == "":
		return "", "", SourceNone, nil
	case filepath.IsAbs(value):
		if err := resolve.Dir(value); err != nil {
			return "", "", SourceNone, err
		}
		return "", filepath.Clean(value), SourcePath, nil
	default:
		return resolve.BundleName(value, suffix), "", SourceFlag, nil
	}
}

// Root returns the developer root.
func (c *Context) Root() string { return c.root }

// SDKName returns the active SDK name. It is empty when an absolute SDK path
// was given.
func (c *Context) SDKName() string { return c.sdkName }

// ToolchainName returns the active toolchain name. It is empty when an
// absolute toolchain path was given.
func (c *Context) ToolchainName() string { return c.toolchainName }

// SDKSource returns where the SDK selection came from.
func (c *Context) SDKSource() Source { return c.sdkSource }

// ToolchainSource returns where the toolchain selection came from.
func (c *Context) ToolchainSource() Source { return c.toolchainSource }

// ExplicitSDK reports whether --sdk named an SDK.
func (c *Context) ExplicitSDK() bool { return c.explicitSDK }

// ExplicitToolchain reports whether --toolchain named a toolchain.
func (c *Context) ExplicitToolchain() bool { return c.explicitToolchain }

// AltSDKPath returns the absolute SDK path given with --sdk, if any.
func (c *Context) AltSDKPath() string { return c.altSDKPath }

// AltToolchainPath returns the absolute toolchain path given with
// --toolchain, if any.
func (c *Context) AltToolchainPath() string { return c.altToolchainPath }

// Verbose reports whether resolution steps are traced.
func (c *Context) Verbose() bool { return c.verbose }

// Log reports whether the command line is echoed before exec.
func (c *Context) Log() bool { return c.log }

// SDKDir returns the active SDK directory.
func (c *Context) SDKDir() (string, error) {
	if c.altSDKPath != "" {
		return c.altSDKPath, nil
	}
	return resolve.SDK(c.root, c.sdkName)
}

// ToolchainDir returns the active toolchain directory.
func (c *Context) ToolchainDir() (string, error) {
	if c.altToolchainPath != "" {
		return c.altToolchainPath, nil
	}
	return resolve.Toolchain(c.root, c.toolchainName)
}

// SDKRecord loads the active SDK's metadata. For an absolute SDK path
// without an info.ini it returns nil and no error.
func (c *Context) SDKRecord() (*metadata.SDKRecord, error) {
	dir, err := c.SDKDir()
	if err != nil {
		return nil, err
	}
	rec, err := metadata.LoadSDK(metadata.InfoFile(dir))
	if err != nil && c.altSDKPath != "" && errors.Is(err, metadata.ErrConfigNotFound) {
		return nil, nil
	}
	return rec, err
}

// ToolchainRecord loads the active toolchain's metadata.
func (c *Context) ToolchainRecord() (*metadata.ToolchainRecord, error) {
	dir, err := c.ToolchainDir()
	if err != nil {
		return nil, err
	}
	return metadata.LoadToolchain(metadata.InfoFile(dir))
}
