// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting of JSON strings.
package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// AppendQuote appends the JSON string encoding of src to dst, including the
// enclosing double quotation marks, and returns the extended slice.
//
// Invalid UTF-8 sequences in src are encoded as the replacement rune.
func AppendQuote(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')

	// Copy runs of bytes that need no escaping in one step.
	start := 0
	for i := 0; i < src.Len(); {
		b := src.At(i)
		if b < utf8.RuneSelf {
			if b >= ' ' && b != '\\' && b != '"' {
				i++
				continue
			}
			dst = mem.Append(dst, src.Slice(start, i))
			if b < ' ' {
				if c := controlEsc[b]; c != 0 {
					dst = append(dst, '\\', c)
				} else {
					dst = append(dst, '\\', 'u', '0', '0', hexDigit[b>>4], hexDigit[b&15])
				}
			} else {
				dst = append(dst, '\\', b)
			}
			i++
			start = i
			continue
		}

		r, n := mem.DecodeRune(src.SliceFrom(i))
		switch {
		case r == utf8.RuneError && n == 1:
			dst = mem.Append(dst, src.Slice(start, i))
			dst = append(dst, `\ufffd`...)
		case r == '\u2028': // line separator
			dst = mem.Append(dst, src.Slice(start, i))
			dst = append(dst, `\u2028`...)
		case r == '\u2029': // paragraph separator
			dst = mem.Append(dst, src.Slice(start, i))
			dst = append(dst, `\u2029`...)
		default:
			i += n
			continue
		}
		i += n
		start = i
	}
	dst = mem.Append(dst, src.SliceFrom(start))
	return append(dst, '"')
}

// Quote returns the JSON string encoding of src, including quotation marks.
func Quote(src string) string { return string(AppendQuote(nil, mem.S(src))) }
