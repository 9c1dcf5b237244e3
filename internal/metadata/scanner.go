// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxLineLen is the longest line accepted in a metadata file.
const MaxLineLen = 64 * 1024

// ErrLineTooLong is returned by Scan when a line exceeds MaxLineLen.
var ErrLineTooLong = errors.New("line too long")

// EntryFunc receives one key/value pair together with the section it was
// found in. Returning an error stops the scan.
type EntryFunc func(section, key, value string) error

// Scan reads INI content from r and calls fn for every key/value pair in
// file order.
//
// Accepted syntax: "[Section]" headers, "key=value" or "key: value" pairs,
// and full-line comments starting with ';' or '#'. Whitespace around
// section names, keys and values is trimmed. Lines that are neither a header
// nor a pair are skipped.
func Scan(r io.Reader, fn EntryFunc) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), MaxLineLen)

	section := ""
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := sc.Text()
		if lineNo == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		line := strings.TrimSpace(text)

		switch {
		case line == "", line[0] == ';', line[0] == '#':
			continue
		case line[0] == '[':
			end := strings.IndexByte(line, ']')
			if end < 0 {
				continue
			}
			section = strings.TrimSpace(line[1:end])
			continue
		}

		sep := strings.IndexAny(line, "=:")
		if sep <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:sep])
		value := strings.TrimSpace(line[sep+1:])
		if err := fn(section, key, value); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("line %d: %w", lineNo+1, ErrLineTooLong)
		}
		return err
	}
	return nil
}
