// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"fmt"
	"path/filepath"
)

const (
	// InfoFileName is the metadata file inside every SDK and toolchain bundle.
	InfoFileName = "info.ini"

	// SectionSDK is the INI section describing an SDK.
	SectionSDK = "SDK"
	// SectionToolchain is the INI section describing a toolchain.
	SectionToolchain = "TOOLCHAIN"

	// KeyIPhoneOSDeploymentTarget marks an SDK as iOS-family.
	KeyIPhoneOSDeploymentTarget = "iphoneos_deployment_target"
	// KeyMacOSXDeploymentTarget marks an SDK as macOS.
	KeyMacOSXDeploymentTarget = "macosx_deployment_target"

	// EnvIPhoneOSDeploymentTarget is the child variable for iOS-family SDKs.
	EnvIPhoneOSDeploymentTarget = "IPHONEOS_DEPLOYMENT_TARGET"
	// EnvMacOSXDeploymentTarget is the child variable for macOS SDKs.
	EnvMacOSXDeploymentTarget = "MACOSX_DEPLOYMENT_TARGET"
)

const (
	// KindSDK selects an SDK info.ini.
	KindSDK Kind = iota + 1
	// KindToolchain selects a toolchain info.ini.
	KindToolchain
	// KindDefaults selects the system-wide default selection file.
	KindDefaults
)

const (
	// PlatformNone means the SDK declared no deployment target.
	PlatformNone PlatformKind = iota
	// PlatformIOS means the last deployment-target key was iphoneos_deployment_target.
	PlatformIOS
	// PlatformMacOS means the last deployment-target key was macosx_deployment_target.
	PlatformMacOS
)

type (
	// Kind selects which record a metadata file is parsed into.
	Kind int

	// PlatformKind is the deployment platform an SDK record targets.
	PlatformKind int

	// Record is implemented by every record type Load can return.
	Record interface {
		Kind() Kind
		// Missing lists the required keys that were never set.
		Missing() []string
	}

	// SDKRecord is the [SDK] section of an SDK bundle's info.ini.
	SDKRecord struct {
		Name             string
		Version          string
		Toolchain        string
		DefaultArch      string
		DeploymentTarget string
		Platform         PlatformKind
	}

	// ToolchainRecord is the [TOOLCHAIN] section of a toolchain bundle's info.ini.
	ToolchainRecord struct {
		Name    string
		Version string
	}

	// DefaultSelection is the fallback SDK and toolchain pair used when neither
	// a flag nor an environment variable selects one.
	DefaultSelection struct {
		SDK       string
		Toolchain string
	}
)

// InfoFile returns the metadata file path of a bundle directory.
func InfoFile(bundleDir string) string {
	return filepath.Join(bundleDir, InfoFileName)
}

// String returns a human-readable name for the record kind.
func (k Kind) String() string {
	switch k {
	case KindSDK:
		return "sdk"
	case KindToolchain:
		return "toolchain"
	case KindDefaults:
		return "default selection"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// String returns the platform name used in diagnostics.
func (p PlatformKind) String() string {
	switch p {
	case PlatformIOS:
		return "ios"
	case PlatformMacOS:
		return "macos"
	default:
		return "none"
	}
}

// DeploymentTargetVar returns the child environment variable that carries
// the deployment target for this platform, or "" for PlatformNone.
func (p PlatformKind) DeploymentTargetVar() string {
	switch p {
	case PlatformIOS:
		return EnvIPhoneOSDeploymentTarget
	case PlatformMacOS:
		return EnvMacOSXDeploymentTarget
	default:
		return ""
	}
}

// Kind implements Record.
func (*SDKRecord) Kind() Kind { return KindSDK }

// Missing implements Record.
func (r *SDKRecord) Missing() []string {
	return missingKeys(SectionSDK,
		required{"name", r.Name},
		required{"version", r.Version},
		required{"toolchain", r.Toolchain},
	)
}

func (r *SDKRecord) apply(section, key, value string) {
	if section != SectionSDK {
		return
	}
	switch key {
	case "name":
		r.Name = value
	case "version":
		r.Version = value
	case "toolchain":
		r.Toolchain = value
	case "default_arch":
		r.DefaultArch = value
	case KeyIPhoneOSDeploymentTarget:
		r.DeploymentTarget = value
		r.Platform = PlatformIOS
	case KeyMacOSXDeploymentTarget:
		r.DeploymentTarget = value
		r.Platform = PlatformMacOS
	}
}

// Kind implements Record.
func (*ToolchainRecord) Kind() Kind { return KindToolchain }

// Missing implements Record.
func (r *ToolchainRecord) Missing() []string {
	return missingKeys(SectionToolchain,
		required{"name", r.Name},
		required{"version", r.Version},
	)
}

func (r *ToolchainRecord) apply(section, key, value string) {
	if section != SectionToolchain {
		return
	}
	switch key {
	case "name":
		r.Name = value
	case "version":
		r.Version = value
	}
}

// Kind implements Record.
func (*DefaultSelection) Kind() Kind { return KindDefaults }

// Missing implements Record.
func (d *DefaultSelection) Missing() []string {
	missing := missingKeys(SectionSDK, required{"name", d.SDK})
	return append(missing, missingKeys(SectionToolchain, required{"name", d.Toolchain})...)
}

func (d *DefaultSelection) apply(section, key, value string) {
	if key != "name" {
		return
	}
	switch section {
	case SectionSDK:
		d.SDK = value
	case SectionToolchain:
		d.Toolchain = value
	}
}

type required struct {
	key   string
	value string
}

func missingKeys(section string, fields ...required) []string {
	var missing []string
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, section+"."+f.key)
		}
	}
	return missing
}
