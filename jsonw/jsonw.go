// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jsonw implements a streaming writer for JSON arrays and objects
// whose members are scalar values.
//
// A Writer emits output as it goes, holding only a bounded buffer. Calls must
// be properly nested: each BeginArray or BeginObject must be matched by the
// corresponding End method, and Field may only be called inside an object.
// Improper nesting is a programming error and causes a panic.
//
// Errors writing to the underlying stream are sticky: once a write fails, all
// subsequent calls do nothing, and Flush and Err report the first error.
package jsonw

import (
	"bufio"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/csvjson/internal/escape"
	"github.com/creachadair/csvjson/scalar"
	"go4.org/mem"
)

// Options control the layout of a Writer's output.
// A nil *Options is ready for use and produces compact output.
type Options struct {
	// If non-empty, pretty-print nested structure, one member or element per
	// line, indented by this string per level of nesting.
	Indent string
}

func (o *Options) indent() string {
	if o == nil {
		return ""
	}
	return o.Indent
}

// A Writer writes a stream of JSON values to an io.Writer.
type Writer struct {
	w      *bufio.Writer
	indent string
	stk    []level
	buf    []byte
	err    error
}

// level records the state of an open array or object.
type level struct {
	object bool
	n      int // number of elements or members written
}

const bufferSize = 64 << 10

// New constructs a Writer that writes to w with the given options.
func New(w io.Writer, opts *Options) *Writer {
	return &Writer{
		w:      bufio.NewWriterSize(w, bufferSize),
		indent: opts.indent(),
		buf:    make([]byte, 0, 256),
	}
}

// BeginArray opens a new array.
func (w *Writer) BeginArray() { w.begin(false, '[') }

// EndArray closes the innermost open array.
func (w *Writer) EndArray() { w.end(false, ']') }

// BeginObject opens a new object.
func (w *Writer) BeginObject() { w.begin(true, '{') }

// EndObject closes the innermost open object.
func (w *Writer) EndObject() { w.end(true, '}') }

// Field writes a member with the given name and value to the innermost open
// object.
func (w *Writer) Field(name string, v scalar.Value) {
	if len(w.stk) == 0 || !w.stk[len(w.stk)-1].object {
		panic("jsonw: Field outside an object")
	}
	w.buf = w.element(w.buf[:0])
	w.buf = escape.AppendQuote(w.buf, mem.S(name))
	w.buf = append(w.buf, ':')
	if w.indent != "" {
		w.buf = append(w.buf, ' ')
	}
	w.buf = AppendValue(w.buf, v)
	w.write(w.buf)
}

// Newline writes a line break between top-level values. It panics if any
// array or object is still open.
func (w *Writer) Newline() {
	if len(w.stk) != 0 {
		panic("jsonw: Newline inside a value")
	}
	w.write([]byte{'\n'})
}

// Flush writes any buffered data to the underlying writer, and reports the
// first error that occurred while writing, if any.
func (w *Writer) Flush() error {
	if w.err == nil {
		w.err = w.w.Flush()
	}
	return w.err
}

// Err reports the first error that occurred while writing, if any.
func (w *Writer) Err() error { return w.err }

func (w *Writer) begin(object bool, open byte) {
	w.buf = w.element(w.buf[:0])
	w.buf = append(w.buf, open)
	w.write(w.buf)
	w.stk = append(w.stk, level{object: object})
}

func (w *Writer) end(object bool, close byte) {
	n := len(w.stk)
	if n == 0 || w.stk[n-1].object != object {
		if object {
			panic("jsonw: EndObject without matching BeginObject")
		}
		panic("jsonw: EndArray without matching BeginArray")
	}
	top := w.stk[n-1]
	w.stk = w.stk[:n-1]
	w.buf = w.buf[:0]
	if top.n != 0 {
		w.buf = w.newline(w.buf)
	}
	w.buf = append(w.buf, close)
	w.write(w.buf)
}

// element prepares to write a new element of the innermost open container,
// appending any separator and indentation to buf.
func (w *Writer) element(buf []byte) []byte {
	n := len(w.stk)
	if n == 0 {
		return buf
	}
	if w.stk[n-1].n != 0 {
		buf = append(buf, ',')
	}
	w.stk[n-1].n++
	return w.newline(buf)
}

// newline appends a line break and indentation for the current nesting depth,
// if pretty-printing is enabled.
func (w *Writer) newline(buf []byte) []byte {
	if w.indent == "" {
		return buf
	}
	buf = append(buf, '\n')
	for range len(w.stk) {
		buf = append(buf, w.indent...)
	}
	return buf
}

func (w *Writer) write(data []byte) {
	if w.err == nil {
		_, w.err = w.w.Write(data)
	}
}

// AppendValue appends the JSON encoding of v to buf.
//
// Double values always include a fraction or exponent, so a Double with an
// integral value is written as "3.0" rather than "3".
func AppendValue(buf []byte, v scalar.Value) []byte {
	switch v.Kind() {
	case scalar.Null:
		return append(buf, "null"...)
	case scalar.Bool:
		return strconv.AppendBool(buf, v.Bool())
	case scalar.Int:
		return strconv.AppendInt(buf, int64(v.Int()), 10)
	case scalar.Long:
		return strconv.AppendInt(buf, v.Long(), 10)
	case scalar.Double:
		return appendDouble(buf, v.Double())
	case scalar.String:
		return escape.AppendQuote(buf, mem.S(v.Text()))
	default:
		panic("jsonw: invalid value kind " + v.Kind().String())
	}
}

// appendDouble formats f in the shortest form that round-trips, using
// exponent notation only for very large or very small magnitudes.
func appendDouble(buf []byte, f float64) []byte {
	start := len(buf)
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	buf = strconv.AppendFloat(buf, f, format, -1, 64)
	if format == 'e' {
		// Clean up e-09 to e-9.
		n := len(buf)
		if n-start >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
		return buf
	}
	for _, b := range buf[start:] {
		if b == '.' {
			return buf
		}
	}
	return append(buf, ".0"...)
}
