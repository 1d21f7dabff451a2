// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package sanitize repairs common defects in the quoting of CSV text, so that
// a strict CSV reader can parse it.
//
// The repair is a single forward scan that tracks whether it is inside a
// quoted field, and whether a quoted field has just closed. Text is copied
// unchanged except for whitespace that directly follows the closing quote of
// a field:
//
//	"value"  ,next    becomes    "value",next
//	"value"   tail    becomes    "value" tail
//
// Doubled quotes inside a quoted field are preserved as escapes.
package sanitize

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"unicode"

	"github.com/creachadair/csvjson/charset"
	"golang.org/x/text/encoding"
)

// DefaultDelimiters are the field delimiters recognized after a closing quote
// when the caller does not provide any.
var DefaultDelimiters = []rune{',', ';', '\t', '|'}

// Repair copies CSV text from r to w, rewriting misplaced whitespace after
// closing quotes. The delims are the runes that may separate fields; if
// empty, DefaultDelimiters is used.
//
// Repair does not validate its input. An unterminated quoted field is copied
// through as-is.
func Repair(w io.Writer, r io.Reader, delims []rune) error {
	if len(delims) == 0 {
		delims = DefaultDelimiters
	}
	s := &scanner{
		in:     bufio.NewReader(r),
		out:    bufio.NewWriter(w),
		delims: delims,
	}
	if err := s.run(); err != nil {
		return err
	}
	return s.out.Flush()
}

// scanner is the state of a repair in progress.
type scanner struct {
	in     *bufio.Reader
	out    *bufio.Writer
	delims []rune

	inQuotes        bool // inside a quoted field
	justClosedQuote bool // the previous rune closed a quoted field
}

func (s *scanner) run() error {
	for {
		c, err := s.next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		if c == '"' {
			if !s.inQuotes {
				s.inQuotes = true
				s.emit('"')
				continue
			}
			nc, err := s.peek()
			if err != nil {
				return err
			}
			if nc == '"' {
				s.in.ReadRune() // consume the escaped quote
				s.emit('"', '"')
			} else {
				s.inQuotes = false
				s.justClosedQuote = true
				s.emit('"')
			}
			continue
		}

		if !s.inQuotes && s.justClosedQuote {
			s.justClosedQuote = false
			if s.isSpace(c) {
				if err := s.trailingSpace(); err != nil {
					return err
				}
				continue
			}
		}
		if isEOL(c) {
			s.justClosedQuote = false
		}
		s.emit(c)
	}
}

// trailingSpace handles a run of whitespace after a closing quote, the first
// rune of which has already been consumed. If the run ends at a delimiter or
// line break, or at the end of input, the whitespace is dropped; otherwise it
// collapses to a single space.
func (s *scanner) trailingSpace() error {
	for {
		nc, err := s.peek()
		if err != nil {
			return err
		} else if nc == eof {
			return nil
		} else if !s.isSpace(nc) {
			if !s.isDelim(nc) && !isEOL(nc) {
				s.emit(' ')
			}
			return nil // nc is processed normally
		}
		s.in.ReadRune()
	}
}

// eof is a sentinel returned by peek at the end of input.
const eof = -1

// next reads the next rune of input.
func (s *scanner) next() (rune, error) {
	c, _, err := s.in.ReadRune()
	return c, err
}

// peek returns the next rune of input without consuming it, or eof.
func (s *scanner) peek() (rune, error) {
	c, _, err := s.in.ReadRune()
	if err == io.EOF {
		return eof, nil
	} else if err != nil {
		return 0, err
	}
	s.in.UnreadRune()
	return c, nil
}

func (s *scanner) emit(cs ...rune) {
	for _, c := range cs {
		s.out.WriteRune(c)
	}
}

// isSpace reports whether c is whitespace subject to repair. Line breaks and
// delimiters (such as tab) are not.
func (s *scanner) isSpace(c rune) bool {
	return unicode.IsSpace(c) && !isEOL(c) && !s.isDelim(c)
}

func (s *scanner) isDelim(c rune) bool { return slices.Contains(s.delims, c) }

func isEOL(c rune) bool { return c == '\n' || c == '\r' }

// A Temp is a temporary file holding repaired CSV text.
type Temp struct {
	path string
}

// Path returns the path of the temporary file.
func (t *Temp) Path() string { return t.path }

// Remove deletes the temporary file. It is safe to call more than once.
func (t *Temp) Remove() error {
	if t == nil || t.path == "" {
		return nil
	}
	err := os.Remove(t.path)
	t.path = ""
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ToTemp repairs the CSV file at path and writes the result to a new
// temporary file, in the same charset enc. The input file is not modified.
// The caller is responsible for calling Remove on the result when it is no
// longer needed.
func ToTemp(path string, enc encoding.Encoding, delims []rune) (_ *Temp, err error) {
	in, err := charset.Open(path, enc)
	if err != nil {
		return nil, fmt.Errorf("sanitize: %w", err)
	}
	defer in.Close()

	f, err := os.CreateTemp("", "csv-relaxed-*.csv")
	if err != nil {
		return nil, fmt.Errorf("sanitize: %w", err)
	}
	tmp := &Temp{path: f.Name()}
	defer func() {
		if err != nil {
			tmp.Remove()
		}
	}()

	w := charset.NewWriter(f, enc)
	if err := Repair(w, in, delims); err != nil {
		f.Close()
		return nil, fmt.Errorf("sanitize %q: %w", path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return nil, fmt.Errorf("sanitize %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("sanitize %q: %w", path, err)
	}
	return tmp, nil
}
