// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package csvjson converts delimited text records (CSV) into JSON.
//
// # Converting
//
// The Convert function reads CSV records from an io.Reader and writes one
// JSON object per record to an io.Writer, either as the elements of a single
// JSON array or as newline-delimited JSON (NDJSON):
//
//	st, err := csvjson.Convert(os.Stdout, input, csvjson.Options{
//	   Header: true,
//	   NDJSON: true,
//	})
//	if err != nil {
//	   log.Fatalf("Convert failed: %v", err)
//	}
//	log.Printf("Wrote %d records", st.Records)
//
// Records are processed one at a time, so the input need not fit in memory.
//
// # Names and values
//
// The members of each object are named by the header row of the input, if
// Options.Header is set; otherwise by the column order of Options.Schema, if
// it declares one; otherwise by position ("col0", "col1", ...). A record with
// more fields than there are names uses positional names for the rest. A
// record with fewer fields than names emits null for the missing ones.
//
// Field values are inferred from their text by the rules of [scalar.Options]
// unless the schema declares a type for the column, in which case the text
// must have that type (see [schema.Coerce]). A field that does not match its
// declared type stops the conversion with a *SchemaMismatchError.
//
// # Files
//
// ConvertFile converts between named files in a given charset, and removes
// the output file if the conversion fails. Run performs a complete job as the
// csvjson command-line tool does: it loads the schema, optionally repairs
// quoting (see package sanitize), detects the delimiter if none is set (see
// package sniff), and then converts.
//
// # Errors
//
// Invalid settings, delimiters, charsets, and schema descriptions are
// reported as *ConfigError. Data that does not satisfy the schema is reported
// as *SchemaMismatchError. Other errors come from reading and writing the
// data. Use IsConfig and IsSchemaMismatch to tell these apart.
package csvjson
