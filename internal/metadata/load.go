// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultSelectionFile is the system-wide default selection file.
const DefaultSelectionFile = "/etc/xcrun.ini"

type applier interface {
	Record
	apply(section, key, value string)
}

// Load parses the metadata file at path into the record selected by kind.
// The returned Record is a *SDKRecord, *ToolchainRecord or *DefaultSelection.
func Load(path string, kind Kind) (Record, error) {
	var rec applier
	switch kind {
	case KindSDK:
		rec = &SDKRecord{}
	case KindToolchain:
		rec = &ToolchainRecord{}
	case KindDefaults:
		rec = &DefaultSelection{}
	default:
		return nil, fmt.Errorf("unknown metadata kind %d", int(kind))
	}

	if err := parseInto(path, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// LoadSDK parses an SDK info.ini.
func LoadSDK(path string) (*SDKRecord, error) {
	rec, err := Load(path, KindSDK)
	if err != nil {
		return nil, err
	}
	return rec.(*SDKRecord), nil
}

// LoadToolchain parses a toolchain info.ini.
func LoadToolchain(path string) (*ToolchainRecord, error) {
	rec, err := Load(path, KindToolchain)
	if err != nil {
		return nil, err
	}
	return rec.(*ToolchainRecord), nil
}

// LoadDefaults parses the system-wide default selection file.
func LoadDefaults(path string) (*DefaultSelection, error) {
	rec, err := Load(path, KindDefaults)
	if err != nil {
		return nil, err
	}
	return rec.(*DefaultSelection), nil
}

func parseInto(path string, rec applier) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ConfigNotFoundError{Path: path, Kind: rec.Kind()}
		}
		return &ConfigParseError{Path: path, Kind: rec.Kind(), Err: err}
	}
	defer f.Close()

	err = Scan(f, func(section, key, value string) error {
		rec.apply(section, key, value)
		return nil
	})
	if err != nil {
		return &ConfigParseError{Path: path, Kind: rec.Kind(), Err: err}
	}

	if missing := rec.Missing(); len(missing) > 0 {
		return &ConfigParseError{Path: path, Kind: rec.Kind(), Missing: missing}
	}
	return nil
}
