// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type (
	// DevRoot builds a developer root tree inside a test temp directory:
	//
	//	<Dir>/usr/bin
	//	<Dir>/SDKs/<name>.sdk/{usr/bin,info.ini}
	//	<Dir>/Toolchains/<name>.toolchain/{usr/bin,usr/lib,info.ini}
	DevRoot struct {
		t   testing.TB
		Dir string
	}

	// SDKSpec describes an SDK bundle's info.ini. Empty fields are not written.
	SDKSpec struct {
		Name        string
		Version     string
		Toolchain   string
		DefaultArch string
		// IPhoneOSTarget and MacOSXTarget are written in that order, so when
		// both are set the macOS key is the last one.
		IPhoneOSTarget string
		MacOSXTarget   string
	}

	// ToolchainSpec describes a toolchain bundle's info.ini.
	ToolchainSpec struct {
		Name    string
		Version string
	}
)

// NewDevRoot creates an empty developer root with a usr/bin directory.
func NewDevRoot(t testing.TB) *DevRoot {
	t.Helper()

	d := &DevRoot{t: t, Dir: t.TempDir()}
	MustMkdirAll(t, d.BinDir(), 0o755)
	return d
}

// BinDir returns <Dir>/usr/bin.
func (d *DevRoot) BinDir() string {
	return filepath.Join(d.Dir, "usr", "bin")
}

// SDKDir returns the bundle directory of the named SDK.
func (d *DevRoot) SDKDir(name string) string {
	return filepath.Join(d.Dir, "SDKs", name+".sdk")
}

// ToolchainDir returns the bundle directory of the named toolchain.
func (d *DevRoot) ToolchainDir(name string) string {
	return filepath.Join(d.Dir, "Toolchains", name+".toolchain")
}

// AddSDK creates an SDK bundle and writes its info.ini. The bundle directory
// is named after spec.Name.
func (d *DevRoot) AddSDK(spec SDKSpec) string {
	d.t.Helper()

	dir := d.SDKDir(spec.Name)
	MustMkdirAll(d.t, filepath.Join(dir, "usr", "bin"), 0o755)
	d.WriteFile(filepath.Join(dir, "info.ini"), spec.INI())
	return dir
}

// AddToolchain creates a toolchain bundle and writes its info.ini.
func (d *DevRoot) AddToolchain(spec ToolchainSpec) string {
	d.t.Helper()

	dir := d.ToolchainDir(spec.Name)
	MustMkdirAll(d.t, filepath.Join(dir, "usr", "bin"), 0o755)
	MustMkdirAll(d.t, filepath.Join(dir, "usr", "lib"), 0o755)
	d.WriteFile(filepath.Join(dir, "info.ini"), spec.INI())
	return dir
}

// AddTool writes an executable shell script named name into binDir.
func (d *DevRoot) AddTool(binDir, name, body string) string {
	d.t.Helper()

	MustMkdirAll(d.t, binDir, 0o755)
	path := filepath.Join(binDir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		d.t.Fatalf("failed to write tool %s: %v", path, err)
	}
	return path
}

// WriteDefaults writes a default selection file under Dir and returns its path.
func (d *DevRoot) WriteDefaults(sdk, toolchain string) string {
	d.t.Helper()

	path := filepath.Join(d.Dir, "xcrun.ini")
	d.WriteFile(path, fmt.Sprintf("[SDK]\nname=%s\n\n[TOOLCHAIN]\nname=%s\n", sdk, toolchain))
	return path
}

// WriteFile writes content to path, creating parent directories.
func (d *DevRoot) WriteFile(path, content string) {
	d.t.Helper()

	MustMkdirAll(d.t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		d.t.Fatalf("failed to write %s: %v", path, err)
	}
}

// INI renders the [SDK] section.
func (s SDKSpec) INI() string {
	var b strings.Builder
	b.WriteString("[SDK]\n")
	writeKey(&b, "name", s.Name)
	writeKey(&b, "version", s.Version)
	writeKey(&b, "toolchain", s.Toolchain)
	writeKey(&b, "default_arch", s.DefaultArch)
	writeKey(&b, "iphoneos_deployment_target", s.IPhoneOSTarget)
	writeKey(&b, "macosx_deployment_target", s.MacOSXTarget)
	return b.String()
}

// INI renders the [TOOLCHAIN] section.
func (s ToolchainSpec) INI() string {
	var b strings.Builder
	b.WriteString("[TOOLCHAIN]\n")
	writeKey(&b, "name", s.Name)
	writeKey(&b, "version", s.Version)
	return b.String()
}

func writeKey(b *strings.Builder, key, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s=%s\n", key, value)
	}
}
