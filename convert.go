// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package csvjson

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/creachadair/csvjson/charset"
	"github.com/creachadair/csvjson/jsonw"
	"github.com/creachadair/csvjson/scalar"
	"github.com/creachadair/csvjson/schema"
	"github.com/creachadair/mds/mapset"
	"golang.org/x/text/encoding"
)

// Stats summarize a completed conversion.
type Stats struct {
	Records   int  // the number of records converted
	Delimiter rune // the field delimiter used
}

// A Converter converts CSV records to JSON with fixed options.
// A Converter may be used for multiple conversions, but not concurrently.
type Converter struct {
	opts   Options
	infer  scalar.Options
	fields []field // reused for each record
}

// A field is a named value ready to be written.
type field struct {
	name  string
	value scalar.Value
}

// NewConverter constructs a Converter with the given options. It reports a
// *ConfigError if the options are not valid.
func NewConverter(opts Options) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Converter{
		opts:  opts,
		infer: scalar.Options{EmptyAsNull: opts.EmptyAsNull, StringsOnly: opts.StringsOnly},
	}, nil
}

// Convert converts CSV records from r to JSON on w with the given options.
// See [Converter.Convert].
func Convert(w io.Writer, r io.Reader, opts Options) (Stats, error) {
	c, err := NewConverter(opts)
	if err != nil {
		return Stats{}, err
	}
	return c.Convert(w, r)
}

// Convert reads CSV records from r and writes them as JSON to w. Blank lines
// in the input are skipped.
//
// If the schema requires columns that the header lacks, Convert reports a
// *SchemaMismatchError before writing anything. If a later record does not
// satisfy the schema, Convert stops and reports a *SchemaMismatchError. In
// that case, the output ends after the last complete record and is not valid
// JSON. Output written to w is buffered, and is flushed before Convert
// returns.
func (c *Converter) Convert(w io.Writer, r io.Reader) (Stats, error) {
	st := Stats{Delimiter: c.opts.delimiter()}
	log := c.opts.logger()

	cr := csv.NewReader(r)
	cr.Comma = st.Delimiter
	cr.TrimLeadingSpace = !unicode.IsSpace(st.Delimiter)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.LazyQuotes = c.opts.LazyQuotes

	var header []string
	if c.opts.Header {
		rec, err := cr.Read()
		if err != nil && err != io.EOF {
			return st, fmt.Errorf("read header: %w", err)
		}
		header = make([]string, len(rec))
		for i, name := range rec {
			header[i] = strings.TrimSpace(name)
		}
		if err := c.checkRequired(header); err != nil {
			return st, err
		}
	}
	names := c.columnNames(header)
	log.Debug("resolved column names", "delimiter", DelimiterName(st.Delimiter),
		"header", c.opts.Header, "names", names)

	var jopts *jsonw.Options
	if c.opts.Pretty && !c.opts.NDJSON {
		jopts = &jsonw.Options{Indent: "  "}
	}
	jw := jsonw.New(w, jopts)
	if !c.opts.NDJSON {
		jw.BeginArray()
	}
	for c.opts.Limit == 0 || st.Records < c.opts.Limit {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			jw.Flush()
			return st, fmt.Errorf("read record %d: %w", st.Records+1, err)
		}
		if err := c.resolve(rec, names, st.Records+1); err != nil {
			jw.Flush()
			return st, err
		}
		jw.BeginObject()
		for _, f := range c.fields {
			jw.Field(f.name, f.value)
		}
		jw.EndObject()
		if c.opts.NDJSON {
			jw.Newline()
		}
		if err := jw.Err(); err != nil {
			return st, fmt.Errorf("write record %d: %w", st.Records+1, err)
		}
		st.Records++
	}
	if !c.opts.NDJSON {
		jw.EndArray()
	}
	if err := jw.Flush(); err != nil {
		return st, fmt.Errorf("write output: %w", err)
	}
	log.Debug("conversion complete", "records", st.Records)
	return st, nil
}

// checkRequired reports an error if the schema declares columns that do not
// appear in header.
func (c *Converter) checkRequired(header []string) error {
	want, ok := c.opts.Schema.Columns()
	if !ok {
		return nil
	}
	have := mapset.New(header...)
	var missing []string
	for _, name := range want {
		if !have.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &SchemaMismatchError{Column: missing[0], Missing: missing}
}

// columnNames returns the names of the columns, given the header (nil if
// none was read). A nil result means all columns are named by position.
func (c *Converter) columnNames(header []string) []string {
	if header != nil {
		return header
	}
	if cols, ok := c.opts.Schema.Columns(); ok && len(cols) != 0 {
		return cols
	}
	return nil
}

// resolve populates c.fields with the named values of rec, which is record
// number row of the input.
func (c *Converter) resolve(rec, names []string, row int) error {
	c.fields = c.fields[:0]
	for i, raw := range rec {
		if i >= len(names) {
			// Positional columns have no schema type.
			c.fields = append(c.fields, field{name: positionalName(i), value: c.infer.Infer(raw)})
			continue
		}
		name := names[i]
		t, ok := c.opts.Schema.TypeOf(name)
		if !ok {
			c.fields = append(c.fields, field{name: name, value: c.infer.Infer(raw)})
			continue
		}
		v, err := schema.Coerce(t, raw, c.opts.EmptyAsNull)
		if err != nil {
			return &SchemaMismatchError{Row: row, Column: name, Raw: raw, Want: t, err: err}
		}
		c.fields = append(c.fields, field{name: name, value: v})
	}
	for _, name := range names[min(len(rec), len(names)):] {
		c.fields = append(c.fields, field{name: name, value: scalar.NullValue()})
	}
	return nil
}

func positionalName(i int) string { return "col" + strconv.Itoa(i) }

// ConvertFile converts the CSV file at inPath to JSON at outPath, creating or
// truncating it. Both files are in the charset enc (nil means UTF-8). If the
// conversion fails, the output file is removed.
func ConvertFile(inPath, outPath string, enc encoding.Encoding, opts Options) (Stats, error) {
	c, err := NewConverter(opts)
	if err != nil {
		return Stats{}, err
	}
	return c.ConvertFile(inPath, outPath, enc)
}

// ConvertFile converts the CSV file at inPath to JSON at outPath, as the
// package-level function of the same name.
func (c *Converter) ConvertFile(inPath, outPath string, enc encoding.Encoding) (_ Stats, err error) {
	in, err := charset.Open(inPath, enc)
	if err != nil {
		return Stats{}, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	f, err := os.Create(outPath)
	if err != nil {
		return Stats{}, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(outPath)
		}
	}()

	w := charset.NewWriter(f, enc)
	st, err := c.Convert(w, in)
	if cerr := w.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("encode output: %w", cerr)
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	return st, err
}
