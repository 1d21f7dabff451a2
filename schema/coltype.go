// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/csvjson/scalar"
)

// A ColumnType is the declared type of a column.
type ColumnType byte

// Constants defining the valid ColumnType values.
const (
	String ColumnType = iota + 1 // text, passed through unchanged
	Int                          // 32-bit signed integer
	Long                         // 64-bit signed integer
	Double                       // finite floating-point number
	Bool                         // true or false
)

var typeStr = [...]string{
	String: "string",
	Int:    "int",
	Long:   "long",
	Double: "double",
	Bool:   "bool",
}

func (c ColumnType) String() string {
	if c == 0 || int(c) >= len(typeStr) {
		return fmt.Sprintf("ColumnType(%d)", c)
	}
	return typeStr[c]
}

// ErrUnknownType is reported by ParseType for a name that is not one of the
// known type aliases.
var ErrUnknownType = errors.New("unknown column type")

// typeAlias maps each accepted spelling to its type. Keys are lower case.
var typeAlias = map[string]ColumnType{
	"string":  String,
	"str":     String,
	"text":    String,
	"int":     Int,
	"integer": Int,
	"long":    Long,
	"double":  Double,
	"float":   Double,
	"number":  Double,
	"bool":    Bool,
	"boolean": Bool,
}

// ParseType parses the name of a column type. Names are matched ignoring
// ASCII case. If the name is not recognized, the error wraps ErrUnknownType.
func ParseType(name string) (ColumnType, error) {
	if t, ok := typeAlias[lowerASCII(name)]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// A CoerceError reports that raw text does not conform to a declared type.
type CoerceError struct {
	Raw  string     // the offending field text
	Want ColumnType // the declared type
}

func (e *CoerceError) Error() string {
	return fmt.Sprintf("value %q is not compatible with type %v", e.Raw, e.Want)
}

// Coerce converts raw to a value of type t. Unlike inference, coercion fails
// if the text does not have the declared type.
//
// Blank text is null if emptyAsNull is set, regardless of t. Otherwise a
// String column passes raw through unchanged, and the other types are parsed
// from the trimmed text. A Double column rejects NaN and infinite values.
func Coerce(t ColumnType, raw string, emptyAsNull bool) (scalar.Value, error) {
	s := strings.TrimSpace(raw)
	if emptyAsNull && s == "" {
		return scalar.NullValue(), nil
	}
	fail := func() (scalar.Value, error) {
		return scalar.Value{}, &CoerceError{Raw: raw, Want: t}
	}
	switch t {
	case String:
		return scalar.StringValue(raw), nil
	case Bool:
		if b, ok := scalar.ParseBool(s); ok {
			return scalar.BoolValue(b), nil
		}
		return fail()
	case Int:
		if z, err := strconv.ParseInt(s, 10, 32); err == nil {
			return scalar.IntValue(int32(z)), nil
		}
		return fail()
	case Long:
		if z, err := strconv.ParseInt(s, 10, 64); err == nil {
			return scalar.LongValue(z), nil
		}
		return fail()
	case Double:
		if f, ok := scalar.ParseDouble(s); ok {
			return scalar.DoubleValue(f), nil
		}
		return fail()
	default:
		panic(fmt.Sprintf("schema: invalid column type %d", t))
	}
}
