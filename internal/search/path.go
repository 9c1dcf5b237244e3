// SPDX-License-Identifier: MPL-2.0

package search

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/invowk/xcrun/internal/metadata"
	"github.com/invowk/xcrun/internal/resolve"
	"github.com/invowk/xcrun/internal/selection"
	"github.com/invowk/xcrun/pkg/platform"
)

// MaxSearchPathLen bounds the joined length of a SearchPath.
const MaxSearchPathLen = 256 * resolve.MaxPathLen

// ErrSearchPathTooLong is returned when the joined search path would exceed
// MaxSearchPathLen.
var ErrSearchPathTooLong = errors.New("search path too long")

type (
	// SearchPath is an ordered list of directories. The first hit wins.
	SearchPath []string

	// Resolution is a built search path together with the SDK and toolchain
	// that contributed to it.
	Resolution struct {
		Path SearchPath
		// SDK is the record that selected Toolchain. Nil when no SDK record
		// took part.
		SDK *metadata.SDKRecord
		// Toolchain is the directory of the toolchain associated with the
		// SDK on the path, empty when none was added.
		Toolchain string
	}
)

// String joins the entries with the platform list separator.
func (sp SearchPath) String() string {
	return strings.Join(sp, platform.ListSeparator)
}

// Build returns the search path for ctx. See Resolve.
func Build(ctx *selection.Context) (SearchPath, error) {
	res, err := Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Resolve builds the search path for ctx. The first entry is always
// <root>/usr/bin, followed by exactly one of:
//
//  1. an SDK named with --sdk and the toolchain its info.ini names
//  2. a toolchain named with --toolchain
//  3. an absolute SDK path, plus its associated toolchain when the path
//     holds an info.ini
//  4. an absolute toolchain path
//  5. the active SDK and the active toolchain
//
// Any failure is returned before a partial path is produced.
func Resolve(ctx *selection.Context) (*Resolution, error) {
	b := &builder{}
	b.add(ctx.Root())

	res := &Resolution{}
	switch {
	case ctx.ExplicitSDK():
		sdkDir, err := resolve.SDK(ctx.Root(), ctx.SDKName())
		if err != nil {
			return nil, err
		}
		if err := withSDK(ctx, b, res, sdkDir); err != nil {
			return nil, err
		}

	case ctx.ExplicitToolchain():
		tcDir, err := resolve.Toolchain(ctx.Root(), ctx.ToolchainName())
		if err != nil {
			return nil, err
		}
		b.add(tcDir)

	case ctx.AltSDKPath() != "":
		alt := ctx.AltSDKPath()
		if !hasInfo(alt) {
			b.add(alt)
			break
		}
		if err := withSDK(ctx, b, res, alt); err != nil {
			return nil, err
		}

	case ctx.AltToolchainPath() != "":
		b.add(ctx.AltToolchainPath())

	default:
		sdkDir, err := ctx.SDKDir()
		if err != nil {
			return nil, err
		}
		tcDir, err := ctx.ToolchainDir()
		if err != nil {
			return nil, err
		}
		b.add(sdkDir)
		b.add(tcDir)
	}

	path, err := b.finish()
	if err != nil {
		return nil, err
	}
	res.Path = path

	slog.Debug("search path built", "path", path.String())
	return res, nil
}

// withSDK adds an SDK's bin directory followed by that of the toolchain its
// info.ini names.
func withSDK(ctx *selection.Context, b *builder, res *Resolution, sdkDir string) error {
	rec, err := metadata.LoadSDK(metadata.InfoFile(sdkDir))
	if err != nil {
		return err
	}
	tcDir, err := resolve.Toolchain(ctx.Root(), rec.Toolchain)
	if err != nil {
		return err
	}
	b.add(sdkDir)
	b.add(tcDir)
	res.SDK = rec
	res.Toolchain = tcDir
	return nil
}

func hasInfo(dir string) bool {
	_, err := os.Stat(metadata.InfoFile(dir))
	return err == nil
}

// builder collects <bundle>/usr/bin entries and keeps the first error.
type builder struct {
	entries SearchPath
	size    int
	err     error
}

func (b *builder) add(bundleDir string) {
	if b.err != nil {
		return
	}
	bin, err := resolve.BinDir(bundleDir)
	if err != nil {
		b.err = err
		return
	}
	b.size += len(bin)
	if len(b.entries) > 0 {
		b.size += len(platform.ListSeparator)
	}
	if b.size > MaxSearchPathLen {
		b.err = fmt.Errorf("%w: %d bytes, limit is %d", ErrSearchPathTooLong, b.size, MaxSearchPathLen)
		return
	}
	b.entries = append(b.entries, bin)
}

func (b *builder) finish() (SearchPath, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.entries, nil
}
