// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package scalar defines the typed values produced from CSV field text, and
// the inference rules that map raw text to those values.
package scalar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	Null   Kind = iota // the JSON null constant
	Bool               // true or false
	Int                // a 32-bit signed integer
	Long               // a 64-bit signed integer
	Double             // a finite 64-bit floating-point value
	String             // a text string
)

var kindStr = [...]string{
	Null:   "null",
	Bool:   "bool",
	Int:    "int",
	Long:   "long",
	Double: "double",
	String: "string",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

// A Value is a single typed scalar. The zero value is null.
//
// The accessor methods panic if called on a Value of the wrong kind.
type Value struct {
	kind Kind
	n    int64   // Bool (0/1), Int, Long
	f    float64 // Double
	s    string  // String
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// BoolValue returns a Bool value for b.
func BoolValue(b bool) Value {
	if b {
		return Value{kind: Bool, n: 1}
	}
	return Value{kind: Bool}
}

// IntValue returns an Int value for z.
func IntValue(z int32) Value { return Value{kind: Int, n: int64(z)} }

// LongValue returns a Long value for z.
func LongValue(z int64) Value { return Value{kind: Long, n: z} }

// DoubleValue returns a Double value for f. It panics if f is NaN or infinite,
// since such values have no JSON representation.
func DoubleValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("scalar: non-finite double %v", f))
	}
	return Value{kind: Double, f: f}
}

// StringValue returns a String value for s.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == Null }

func (v Value) check(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("scalar: %v value used as %v", v.kind, k))
	}
}

// Bool returns the Boolean content of a Bool value.
func (v Value) Bool() bool { v.check(Bool); return v.n != 0 }

// Int returns the content of an Int value.
func (v Value) Int() int32 { v.check(Int); return int32(v.n) }

// Long returns the content of a Long value.
func (v Value) Long() int64 { v.check(Long); return v.n }

// Double returns the content of a Double value.
func (v Value) Double() float64 { v.check(Double); return v.f }

// Text returns the content of a String value.
func (v Value) Text() string { v.check(String); return v.s }

// String renders v for diagnostics. Strings are quoted.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.n != 0)
	case Int, Long:
		return strconv.FormatInt(v.n, 10)
	case Double:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case String:
		return strconv.Quote(v.s)
	default:
		panic(fmt.Sprintf("scalar: invalid kind %d", v.kind))
	}
}

// Options control how Infer maps raw field text to values.
// A zero Options performs full inference and never yields null.
type Options struct {
	// If true, a field that is empty or only whitespace infers to null.
	EmptyAsNull bool

	// If true, disable inference: every non-null field is a String holding
	// the raw text unchanged.
	StringsOnly bool
}

// Infer maps raw to a typed value. The rules apply in order, and the first
// that matches wins:
//
//  1. With EmptyAsNull, blank text is null.
//  2. With StringsOnly, the raw text is a String.
//  3. "true" or "false" (trimmed, ignoring ASCII case) is a Bool.
//  4. A trimmed decimal integer in 32-bit range is an Int.
//  5. A trimmed decimal integer in 64-bit range is a Long.
//  6. A trimmed finite floating-point literal is a Double.
//  7. Anything else is a String holding the untrimmed raw text.
//
// Infer never fails.
func (o Options) Infer(raw string) Value {
	t := strings.TrimSpace(raw)
	if o.EmptyAsNull && t == "" {
		return NullValue()
	}
	if o.StringsOnly {
		return StringValue(raw)
	}
	if b, ok := ParseBool(t); ok {
		return BoolValue(b)
	}
	if z, err := strconv.ParseInt(t, 10, 32); err == nil {
		return IntValue(int32(z))
	}
	if z, err := strconv.ParseInt(t, 10, 64); err == nil {
		return LongValue(z)
	}
	if f, ok := ParseDouble(t); ok {
		return DoubleValue(f)
	}
	return StringValue(raw)
}

// ParseBool reports whether s is exactly "true" or "false" ignoring ASCII
// case, and if so which.
func ParseBool(s string) (value, ok bool) {
	if EqualFoldASCII(s, "true") {
		return true, true
	} else if EqualFoldASCII(s, "false") {
		return false, true
	}
	return false, false
}

// ParseDouble parses s as a finite floating-point number. It reports false
// for malformed input, for out-of-range values, and for the special values
// NaN and infinity.
func ParseDouble(s string) (float64, bool) {
	if !isDecimalFloat(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isDecimalFloat reports whether s has the shape of a decimal floating-point
// literal: an optional sign, digits with an optional fraction, and an
// optional exponent. This excludes the hex, underscore, and named forms that
// strconv.ParseFloat would otherwise accept.
func isDecimalFloat(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// EqualFoldASCII reports whether a and b are equal under ASCII case folding.
// Non-ASCII bytes must match exactly.
func EqualFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
