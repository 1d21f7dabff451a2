// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package csvjson

import (
	"errors"
	"fmt"

	"github.com/creachadair/csvjson/charset"
	"github.com/creachadair/csvjson/sanitize"
	"github.com/creachadair/csvjson/schema"
	"github.com/creachadair/csvjson/sniff"
)

// A Job describes a complete file conversion.
type Job struct {
	Input  string // path of the CSV input
	Output string // path of the JSON output

	// The name of the charset of the input and output, for example
	// "ISO-8859-1". If empty, UTF-8 is used.
	Charset string

	// If set, the path of a schema description to load into Options.Schema.
	SchemaPath string

	// If true, repair the quoting of the input before conversion (see
	// package sanitize) and read the repaired text with lazy quotes, both
	// when detecting the delimiter and when converting.
	Relaxed bool

	// The number of records to sample when detecting the delimiter.
	// Zero means sniff.DefaultMaxRecords.
	SampleSize int

	// Options for the conversion. If Options.Delimiter is 0, the delimiter
	// is detected from the input.
	Options Options
}

// Run performs the conversion described by job. Settings are checked before
// the output file is created, and problems with them are reported as
// *ConfigError. Any temporary file created along the way is removed before
// Run returns.
func Run(job Job) (Stats, error) {
	opts := job.Options
	log := opts.logger()
	if err := opts.Validate(); err != nil {
		return Stats{}, err
	}
	enc, err := charset.Lookup(job.Charset)
	if err != nil {
		return Stats{}, configError(err, "charset")
	}
	if job.SchemaPath != "" {
		s, err := schema.Load(job.SchemaPath)
		if errors.Is(err, schema.ErrInvalid) {
			return Stats{}, configError(err, "schema")
		} else if err != nil {
			return Stats{}, err
		}
		opts.Schema = s
	}
	c, err := NewConverter(opts)
	if err != nil {
		return Stats{}, err
	}

	source := job.Input
	if job.Relaxed {
		var delims []rune
		if opts.Delimiter != 0 {
			delims = []rune{opts.Delimiter}
		}
		tmp, err := sanitize.ToTemp(job.Input, enc, delims)
		if err != nil {
			return Stats{}, err
		}
		defer tmp.Remove()
		log.Debug("repaired input quoting", "input", job.Input, "temp", tmp.Path())

		source = tmp.Path()
		c.opts.LazyQuotes = true
	}

	if opts.Delimiter == 0 {
		res := sniff.DetectReader(sniff.FileOpener(source, enc), &sniff.Options{
			MaxRecords: job.SampleSize,
			LazyQuotes: job.Relaxed,
			Logger:     log,
		})
		log.Debug("detected delimiter", "delimiter", DelimiterName(res.Delimiter), "score", res.Score)
		c.opts.Delimiter = res.Delimiter
	}

	st, err := c.ConvertFile(source, job.Output, enc)
	if err != nil {
		return st, fmt.Errorf("convert %q: %w", job.Input, err)
	}
	return st, nil
}
