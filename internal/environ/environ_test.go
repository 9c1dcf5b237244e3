// SPDX-License-Identifier: MPL-2.0

package environ

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/invowk/xcrun/internal/metadata"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

var (
	root      = filepath.FromSlash("/dev")
	sdkDir    = filepath.FromSlash("/dev/SDKs/iPhoneOS10.3.sdk")
	toolchain = filepath.FromSlash("/dev/Toolchains/ios-10.toolchain")

	iosSDK = &metadata.SDKRecord{
		Name: "iPhoneOS10.3", Version: "10.3", Toolchain: "ios-10",
		DefaultArch: "arm64", DeploymentTarget: "10.3", Platform: metadata.PlatformIOS,
	}
	macSDK = &metadata.SDKRecord{
		Name: "MacOSX10.14", Version: "10.14", Toolchain: "osx",
		DefaultArch: "x86_64", DeploymentTarget: "10.14", Platform: metadata.PlatformMacOS,
	}
)

func request(sdk *metadata.SDKRecord) Request {
	return Request{DeveloperRoot: root, SDKDir: sdkDir, ToolchainDir: toolchain, SDK: sdk}
}

func TestCompose(t *testing.T) {
	t.Parallel()

	rootBin := filepath.Join(root, "usr", "bin")
	tcBin := filepath.Join(toolchain, "usr", "bin")
	tcLib := filepath.Join(toolchain, "usr", "lib")

	tests := []struct {
		name    string
		sdk     *metadata.SDKRecord
		inherit map[string]string
		want    Environment
	}{
		{
			name:    "ios sdk from metadata",
			sdk:     iosSDK,
			inherit: map[string]string{"PATH": "/usr/bin:/bin", "HOME": "/home/u", "EDITOR": "vi"},
			want: Environment{
				"SDKROOT":                    sdkDir,
				"PATH":                       rootBin + ":" + tcBin + ":/usr/bin:/bin",
				"LD_LIBRARY_PATH":            tcLib,
				"HOME":                       "/home/u",
				"DEVELOPER_DIR":              root,
				"TARGET_TRIPLE":              "arm64-apple-darwin16",
				"IPHONEOS_DEPLOYMENT_TARGET": "10.3",
			},
		},
		{
			name: "macos sdk without inherited path or home",
			sdk:  macSDK,
			want: Environment{
				"SDKROOT":                  sdkDir,
				"PATH":                     rootBin + ":" + tcBin,
				"LD_LIBRARY_PATH":          tcLib,
				"DEVELOPER_DIR":            root,
				"TARGET_TRIPLE":            "x86_64-apple-darwin18",
				"MACOSX_DEPLOYMENT_TARGET": "10.14",
			},
		},
		{
			name: "inherited values take precedence",
			sdk:  macSDK,
			inherit: map[string]string{
				"TARGET_TRIPLE":              "armv7-apple-darwin11",
				"IPHONEOS_DEPLOYMENT_TARGET": "5.0",
				"MACOSX_DEPLOYMENT_TARGET":   "10.9",
			},
			want: Environment{
				"SDKROOT":                    sdkDir,
				"PATH":                       rootBin + ":" + tcBin,
				"LD_LIBRARY_PATH":            tcLib,
				"DEVELOPER_DIR":              root,
				"TARGET_TRIPLE":              "armv7-apple-darwin11",
				"IPHONEOS_DEPLOYMENT_TARGET": "5.0",
			},
		},
		{
			name:    "empty inherited triple is passed through",
			sdk:     macSDK,
			inherit: map[string]string{"TARGET_TRIPLE": ""},
			want: Environment{
				"SDKROOT":                  sdkDir,
				"PATH":                     rootBin + ":" + tcBin,
				"LD_LIBRARY_PATH":          tcLib,
				"DEVELOPER_DIR":            root,
				"TARGET_TRIPLE":            "",
				"MACOSX_DEPLOYMENT_TARGET": "10.14",
			},
		},
		{
			name:    "inherited macos target over sdk value",
			sdk:     iosSDK,
			inherit: map[string]string{"MACOSX_DEPLOYMENT_TARGET": "10.9"},
			want: Environment{
				"SDKROOT":                  sdkDir,
				"PATH":                     rootBin + ":" + tcBin,
				"LD_LIBRARY_PATH":          tcLib,
				"DEVELOPER_DIR":            root,
				"TARGET_TRIPLE":            "arm64-apple-darwin16",
				"MACOSX_DEPLOYMENT_TARGET": "10.9",
			},
		},
		{
			name: "sdk without deployment target omits triple and target",
			sdk:  &metadata.SDKRecord{Name: "Bare", Version: "1", Toolchain: "t", DefaultArch: "arm64"},
			want: Environment{
				"SDKROOT":         sdkDir,
				"PATH":            rootBin + ":" + tcBin,
				"LD_LIBRARY_PATH": tcLib,
				"DEVELOPER_DIR":   root,
			},
		},
		{
			name: "no sdk metadata",
			want: Environment{
				"SDKROOT":         sdkDir,
				"PATH":            rootBin + ":" + tcBin,
				"LD_LIBRARY_PATH": tcLib,
				"DEVELOPER_DIR":   root,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := Composer{LookupEnv: env(tt.inherit)}
			got, err := c.Compose(request(tt.sdk))
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compose() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompose_ValueTooLong(t *testing.T) {
	t.Parallel()

	c := Composer{LookupEnv: env(map[string]string{"PATH": strings.Repeat("p", MaxValueLen)})}
	if _, err := c.Compose(request(iosSDK)); !errors.Is(err, ErrValueTooLong) {
		t.Errorf("Compose() error = %v, want ErrValueTooLong", err)
	}
}

func TestTargetTriple(t *testing.T) {
	t.Parallel()

	c := Composer{LookupEnv: env(nil)}
	if got, ok := c.TargetTriple(macSDK); !ok || got != "x86_64-apple-darwin18" {
		t.Errorf("TargetTriple(mac) = %q, %v", got, ok)
	}
	if got, ok := c.TargetTriple(nil); ok {
		t.Errorf("TargetTriple(nil) = %q, want none", got)
	}

	c = Composer{LookupEnv: env(map[string]string{"TARGET_TRIPLE": "custom"})}
	if got, ok := c.TargetTriple(nil); !ok || got != "custom" {
		t.Errorf("TargetTriple() with inherited = %q, %v", got, ok)
	}

	// Set but empty is still inherited.
	c = Composer{LookupEnv: env(map[string]string{"TARGET_TRIPLE": ""})}
	if got, ok := c.TargetTriple(macSDK); !ok || got != "" {
		t.Errorf("TargetTriple(mac) with empty inherited = %q, %v, want \"\", true", got, ok)
	}
}

func TestEnvironment_Environ(t *testing.T) {
	t.Parallel()

	e := Environment{"PATH": "/bin", "HOME": "/h", "SDKROOT": "/s"}
	want := []string{"HOME=/h", "PATH=/bin", "SDKROOT=/s"}
	if diff := cmp.Diff(want, e.Environ()); diff != "" {
		t.Errorf("Environ() mismatch (-want +got):\n%s", diff)
	}
}
