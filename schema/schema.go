// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package schema defines column schemas that override type inference for
// named CSV columns, and the description format they are loaded from.
//
// A schema description is a JSON object with two optional members:
//
//	{
//	  // Columns expected in the input, in order.
//	  "columns": ["id", "name", "age"],
//	  // Declared types by column name.
//	  "types": {"age": "int", "name": "string"},
//	}
//
// Comments and trailing commas are permitted (HuJSON). Type names are
// matched by [ParseType].
package schema

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/creachadair/mds/value"
	"github.com/tailscale/hujson"
)

// ErrInvalid is wrapped by all errors reporting a malformed description.
var ErrInvalid = errors.New("invalid schema")

// A Schema is a partial description of the columns of a CSV input.  It may
// declare the column names in order, the types of some columns by name, or
// both. A Schema is not modified after it is constructed.
type Schema struct {
	columns value.Maybe[[]string]
	types   map[string]ColumnType
}

// New constructs a Schema from a list of column names and a map of declared
// types. A nil columns slice means the schema declares no column order.
// The arguments are copied.
func New(columns []string, types map[string]ColumnType) *Schema {
	s := &Schema{types: make(map[string]ColumnType, len(types))}
	if columns != nil {
		s.columns = value.Just(slices.Clone(columns))
	}
	for name, t := range types {
		s.types[name] = t
	}
	return s
}

// Columns returns a copy of the declared column names, and reports whether
// the description declared them at all.
func (s *Schema) Columns() ([]string, bool) {
	if s == nil || !s.columns.Present() {
		return nil, false
	}
	return slices.Clone(s.columns.Get()), true
}

// HasColumns reports whether s declares a non-empty list of column names.
func (s *Schema) HasColumns() bool {
	return s != nil && s.columns.Present() && len(s.columns.Get()) != 0
}

// TypeOf reports the declared type of the named column, if any.
func (s *Schema) TypeOf(name string) (ColumnType, bool) {
	if s == nil {
		return 0, false
	}
	t, ok := s.types[name]
	return t, ok
}

// HasTypes reports whether s declares the type of at least one column.
func (s *Schema) HasTypes() bool { return s != nil && len(s.types) != 0 }

// Load reads and parses a schema description from the named file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load schema %q: %w", path, err)
	}
	return s, nil
}

// Parse parses a schema description from data.
func Parse(data []byte) (*Schema, error) {
	root, err := hujson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	obj, ok := root.Value.(*hujson.Object)
	if !ok {
		return nil, fmt.Errorf("%w: description must be an object", ErrInvalid)
	}

	s := &Schema{types: make(map[string]ColumnType)}
	for _, m := range obj.Members {
		switch memberName(m) {
		case "columns":
			// A columns member that is not an array declares nothing.
			arr, ok := m.Value.Value.(*hujson.Array)
			if !ok {
				continue
			}
			cols := make([]string, 0, len(arr.Elements))
			for i, elt := range arr.Elements {
				lit, ok := elt.Value.(hujson.Literal)
				if !ok {
					return nil, fmt.Errorf("%w: column %d must be a name", ErrInvalid, i)
				}
				cols = append(cols, lit.String())
			}
			s.columns = value.Just(cols)

		case "types":
			tobj, ok := m.Value.Value.(*hujson.Object)
			if !ok {
				return nil, fmt.Errorf("%w: \"types\" must be an object mapping column names to types", ErrInvalid)
			}
			for _, tm := range tobj.Members {
				col := memberName(tm)
				lit, ok := tm.Value.Value.(hujson.Literal)
				if !ok || lit.Kind() != '"' {
					return nil, fmt.Errorf("%w: type of column %q must be a string", ErrInvalid, col)
				}
				name := lit.String()
				if strings.TrimSpace(name) == "" {
					return nil, fmt.Errorf("%w: empty type for column %q", ErrInvalid, col)
				}
				ct, err := ParseType(name)
				if err != nil {
					return nil, fmt.Errorf("%w: column %q: %w", ErrInvalid, col, err)
				}
				s.types[col] = ct
			}
		}
	}
	return s, nil
}

func memberName(m hujson.ObjectMember) string {
	return m.Name.Value.(hujson.Literal).String()
}
