// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseResult is a decoded document plus the schema-unified value it was
// decoded from.
type ParseResult[T any] struct {
	Value   *T
	Unified cue.Value
}

// ParseAndDecode checks data against the definition at schemaPath inside
// schema and decodes the unified value into T. Errors from user data carry
// the file name and the JSON path of the offending field; a broken schema
// is reported as an internal error.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	name := o.filename
	if name == "" {
		name = "<input>"
	}

	if err := CheckFileSize(data, o.maxFileSize, name); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	def, err := lookupDefinition(ctx, schema, schemaPath)
	if err != nil {
		return nil, err
	}

	doc := ctx.CompileBytes(data, cue.Filename(name))
	if doc.Err() != nil {
		return nil, FormatError(doc.Err(), name)
	}

	unified := def.Unify(doc)
	var checks []cue.Option
	if o.concrete {
		checks = append(checks, cue.Concrete(true))
	}
	if err := unified.Validate(checks...); err != nil {
		return nil, FormatError(err, name)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, name)
	}
	return &ParseResult[T]{Value: &out, Unified: unified}, nil
}

// ParseAndDecodeString is ParseAndDecode for a schema held in a string.
func ParseAndDecodeString[T any](schema string, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	return ParseAndDecode[T]([]byte(schema), data, schemaPath, opts...)
}

func lookupDefinition(ctx *cue.Context, schema []byte, path string) (cue.Value, error) {
	v := ctx.CompileBytes(schema)
	if v.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", v.Err())
	}
	def := v.LookupPath(cue.ParsePath(path))
	if def.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", path, def.Err())
	}
	return def, nil
}
