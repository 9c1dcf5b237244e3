// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestFilesystemPathValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      FilesystemPath
		wantValid bool
	}{
		{"absolute", "/Applications/Xcode.app/Contents/Developer", true},
		{"relative", "xcrun.ini", true},
		{"spaces inside", "/Library/Developer/My Tools/config.cue", true},
		{"dot", ".", true},
		{"empty", "", false},
		{"spaces only", "   ", false},
		{"tab only", "\t", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.path.Validate()
			if (err == nil) != tt.wantValid {
				t.Fatalf("FilesystemPath(%q).Validate() = %v, wantValid %v", tt.path, err, tt.wantValid)
			}
			if tt.wantValid {
				return
			}
			if !errors.Is(err, ErrInvalidFilesystemPath) {
				t.Errorf("error does not wrap ErrInvalidFilesystemPath: %v", err)
			}
			var pathErr *InvalidFilesystemPathError
			if !errors.As(err, &pathErr) || pathErr.Value != tt.path {
				t.Errorf("error = %#v, want *InvalidFilesystemPathError for %q", err, tt.path)
			}
		})
	}
}
