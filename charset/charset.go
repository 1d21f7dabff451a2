// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package charset resolves character set names and wraps byte streams to
// decode from and encode to a named charset.
//
// All text handled by the rest of the module is UTF-8. Input in another
// charset is decoded to UTF-8 as it is read, and output is encoded from UTF-8
// as it is written.
package charset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Default is the encoding used when no charset is named.
var Default encoding.Encoding = unicode.UTF8

// ErrUnknown is wrapped by Lookup for a name that does not resolve to a
// supported charset.
var ErrUnknown = errors.New("unknown charset")

// Lookup resolves a charset name such as "UTF-8", "ISO-8859-1", or
// "windows-1252". Names are matched ignoring case, using IANA names and
// aliases first and then the WHATWG encoding labels. An empty name selects
// Default.
func Lookup(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Default, nil
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil && enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Name returns the canonical IANA name of enc, or "" if it has none.
func Name(enc encoding.Encoding) string {
	name, err := ianaindex.IANA.Name(enc)
	if err != nil {
		return ""
	}
	return name
}

// NewReader returns a reader that decodes r from enc to UTF-8. A nil enc
// means Default. A leading byte order mark, if present, is removed.
func NewReader(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(orDefault(enc).NewDecoder()))
}

// NewWriter returns a writer that encodes UTF-8 text to enc on w.
// A nil enc means Default. The caller must close the writer to flush buffered
// output; closing does not close w. Text that enc cannot represent causes a
// write error.
func NewWriter(w io.Writer, enc encoding.Encoding) io.WriteCloser {
	return transform.NewWriter(w, orDefault(enc).NewEncoder())
}

func orDefault(enc encoding.Encoding) encoding.Encoding {
	if enc == nil {
		return Default
	}
	return enc
}

// A File is an open file whose contents are decoded to UTF-8.
type File struct {
	io.Reader
	f *os.File
}

// Close closes the underlying file.
func (f File) Close() error { return f.f.Close() }

// Open opens the named file for reading, decoding from enc.
func Open(path string, enc encoding.Encoding) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	return File{Reader: NewReader(f, enc), f: f}, nil
}
