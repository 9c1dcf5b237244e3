// SPDX-License-Identifier: MPL-2.0

// Package environ composes the environment a dispatched tool runs with.
//
// The child environment replaces the inherited one entirely. Only HOME,
// PATH, TARGET_TRIPLE and the deployment-target variables are carried over
// from the caller, and only as inputs to the variables listed below.
package environ

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/invowk/xcrun/internal/metadata"
	"github.com/invowk/xcrun/internal/resolve"
	"github.com/invowk/xcrun/internal/triple"
	"github.com/invowk/xcrun/pkg/platform"
)

// Variables set in the child environment.
const (
	EnvSDKRoot        = "SDKROOT"
	EnvPath           = "PATH"
	EnvLDLibraryPath  = "LD_LIBRARY_PATH"
	EnvHome           = "HOME"
	EnvDeveloperDir   = "DEVELOPER_DIR"
	EnvTargetTriple   = "TARGET_TRIPLE"
	EnvIPhoneOSTarget = metadata.EnvIPhoneOSDeploymentTarget
	EnvMacOSXTarget   = metadata.EnvMacOSXDeploymentTarget
)

// MaxValueLen bounds a single environment value.
const MaxValueLen = 128 * 1024

// ErrValueTooLong is returned when a composed value exceeds MaxValueLen.
var ErrValueTooLong = errors.New("environment value too long")

type (
	// Environment maps variable names to values.
	Environment map[string]string

	// Request describes the selection the environment is built for.
	Request struct {
		DeveloperRoot string
		SDKDir        string
		ToolchainDir  string
		// SDK may be nil when the SDK directory has no metadata.
		SDK *metadata.SDKRecord
	}

	// Composer builds child environments.
	Composer struct {
		// LookupEnv defaults to os.LookupEnv.
		LookupEnv func(string) (string, bool)
	}
)

// Environ returns the environment as sorted KEY=VALUE strings.
func (e Environment) Environ() []string {
	out := make([]string, 0, len(e))
	for _, k := range slices.Sorted(maps.Keys(e)) {
		out = append(out, k+"="+e[k])
	}
	return out
}

func (c Composer) lookup(key string) (string, bool) {
	if c.LookupEnv == nil {
		return os.LookupEnv(key)
	}
	return c.LookupEnv(key)
}

// Compose builds the child environment for req.
//
// A missing target triple or deployment target is logged as a warning and
// the variable is left out. Composition fails only when a value would
// exceed MaxValueLen.
func (c Composer) Compose(req Request) (Environment, error) {
	rootBin, err := resolve.BinDir(req.DeveloperRoot)
	if err != nil {
		return nil, err
	}
	toolchainBin, err := resolve.BinDir(req.ToolchainDir)
	if err != nil {
		return nil, err
	}
	toolchainLib, err := resolve.LibDir(req.ToolchainDir)
	if err != nil {
		return nil, err
	}

	path := rootBin + platform.ListSeparator + toolchainBin
	if inherited, ok := c.lookup(EnvPath); ok {
		path += platform.ListSeparator + inherited
	}

	env := Environment{
		EnvSDKRoot:       req.SDKDir,
		EnvPath:          path,
		EnvLDLibraryPath: toolchainLib,
		EnvDeveloperDir:  req.DeveloperRoot,
	}
	if home, ok := c.lookup(EnvHome); ok {
		env[EnvHome] = home
	}

	if t, ok := c.TargetTriple(req.SDK); ok {
		env[EnvTargetTriple] = t
	} else {
		slog.Warn("failed to retrieve target triple information", "sdk", req.SDKDir)
	}

	if name, value, ok := c.DeploymentTarget(req.SDK); ok {
		env[name] = value
	} else {
		slog.Warn("failed to retrieve deployment target information", "sdk", req.SDKDir)
	}

	for k, v := range env {
		if len(v) > MaxValueLen {
			return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrValueTooLong, k, len(v), MaxValueLen)
		}
	}
	return env, nil
}

// TargetTriple returns the inherited TARGET_TRIPLE when set, otherwise the
// triple derived from the SDK's deployment target and default architecture.
func (c Composer) TargetTriple(sdk *metadata.SDKRecord) (string, bool) {
	if t, ok := c.lookup(EnvTargetTriple); ok {
		return t, true
	}
	if sdk == nil {
		return "", false
	}
	return triple.Derive(sdk.DeploymentTarget, sdk.DefaultArch)
}

// DeploymentTarget picks the single deployment-target variable for the
// child: an inherited IPHONEOS_DEPLOYMENT_TARGET, then an inherited
// MACOSX_DEPLOYMENT_TARGET, then the SDK's own value under the name matching
// its platform.
func (c Composer) DeploymentTarget(sdk *metadata.SDKRecord) (name, value string, ok bool) {
	for _, key := range []string{EnvIPhoneOSTarget, EnvMacOSXTarget} {
		if v, set := c.lookup(key); set {
			return key, v, true
		}
	}
	if sdk == nil || sdk.DeploymentTarget == "" {
		return "", "", false
	}
	if name := sdk.Platform.DeploymentTargetVar(); name != "" {
		return name, sdk.DeploymentTarget, true
	}
	return "", "", false
}
