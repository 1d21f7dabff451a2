// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package csvjson

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/csvjson/schema"
)

// Options control a conversion. A zero Options converts comma-separated
// input without a header to a compact JSON array, inferring field types.
//
// Leading spaces are dropped from each field unless the delimiter is itself
// whitespace. Trailing spaces are kept, so " Ana , x " yields "Ana " and "x ".
// Header names are trimmed on both sides. Spaces between a closing quote and
// the next delimiter are a syntax error; Job.Relaxed repairs them.
type Options struct {
	// The field delimiter. Zero means comma, except for Run, where zero
	// means the delimiter is detected from the input.
	Delimiter rune

	// If true, the first record is a header naming the columns.
	Header bool

	// If true, the input has no header row. NoHeader is the default; setting
	// it explicitly with Header is an error.
	NoHeader bool

	// If true, a blank field is null rather than an empty string. This
	// applies to schema-typed columns too.
	EmptyAsNull bool

	// If true, fields without a schema type are not inferred, and are
	// emitted as strings.
	StringsOnly bool

	// If true, write one compact JSON object per line, with no enclosing
	// array. Pretty is ignored.
	NDJSON bool

	// If true, indent the JSON array output.
	Pretty bool

	// If true, tolerate quotes that appear inside unquoted fields and
	// undoubled quotes inside quoted fields.
	LazyQuotes bool

	// If positive, stop after converting this many records.
	Limit int

	// If non-nil, the schema that names and types the columns.
	Schema *schema.Schema

	// If non-nil, receives debug logs about the conversion.
	Logger *slog.Logger
}

// Validate reports a *ConfigError if o is not a valid combination of
// settings, or returns nil.
func (o Options) Validate() error {
	if o.Header && o.NoHeader {
		return configError(nil, "header and no-header are mutually exclusive")
	}
	if o.Delimiter != 0 && !validDelim(o.Delimiter) {
		return configError(nil, "invalid delimiter %q", o.Delimiter)
	}
	if o.Limit < 0 {
		return configError(nil, "negative limit %d", o.Limit)
	}
	return nil
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func validDelim(r rune) bool {
	return r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// ParseDelimiter parses a delimiter setting. It accepts ",", ";", "|", and
// for tab either "tab", a literal tab, or the escape `\t`. The setting "auto"
// (in any case) returns 0, meaning the delimiter should be detected.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case ",", ";", "|":
		return rune(s[0]), nil
	case "\t", `\t`, "tab":
		return '\t', nil
	case "":
		return 0, configError(nil, "empty delimiter")
	}
	if strings.EqualFold(s, "auto") {
		return 0, nil
	}
	return 0, configError(nil, "unsupported delimiter %q", s)
}

// DelimiterName returns a printable name for a delimiter, the inverse of
// ParseDelimiter.
func DelimiterName(r rune) string {
	switch r {
	case 0:
		return "auto"
	case '\t':
		return `\t`
	}
	return string(r)
}
