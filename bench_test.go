// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package csvjson_test

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/csvjson"
	"github.com/creachadair/csvjson/sanitize"
	"github.com/creachadair/csvjson/schema"
	"github.com/creachadair/csvjson/sniff"
)

// benchInput returns CSV text with a header and n records of mixed types.
func benchInput(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString("id,name,score,active,note\n")
	for i := range n {
		fmt.Fprintf(&buf, "%d,user%d,%d.%02d,%v,\"note, with \"\"quotes\"\" %d\"\n",
			i, i, i%100, i%97, i%2 == 0, i)
	}
	return buf.Bytes()
}

func BenchmarkConvert(b *testing.B) {
	input := benchInput(10000)
	b.Logf("Benchmark input: %d bytes", len(input))

	typed := schema.New(nil, map[string]schema.ColumnType{
		"id":    schema.Long,
		"score": schema.Double,
	})
	for _, bc := range []struct {
		name string
		opts csvjson.Options
	}{
		{"Array", csvjson.Options{Header: true}},
		{"Pretty", csvjson.Options{Header: true, Pretty: true}},
		{"NDJSON", csvjson.Options{Header: true, NDJSON: true}},
		{"StringsOnly", csvjson.Options{Header: true, StringsOnly: true}},
		{"Schema", csvjson.Options{Header: true, Schema: typed}},
	} {
		b.Run(bc.name, func(b *testing.B) {
			b.SetBytes(int64(len(input)))
			for b.Loop() {
				if _, err := csvjson.Convert(io.Discard, bytes.NewReader(input), bc.opts); err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		})
	}
}

func BenchmarkSniff(b *testing.B) {
	input := benchInput(sniff.DefaultMaxRecords)
	open := func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(input)), nil
	}
	for b.Loop() {
		if got := sniff.DetectReader(open, nil); got.Delimiter != ',' {
			b.Fatalf("Detected %q, want ','", got.Delimiter)
		}
	}
}

func BenchmarkRepair(b *testing.B) {
	input := strings.ReplaceAll(string(benchInput(10000)), "\"\n", "\"  \n")
	b.SetBytes(int64(len(input)))
	for b.Loop() {
		if err := sanitize.Repair(io.Discard, strings.NewReader(input), nil); err != nil {
			b.Fatalf("Unexpected error: %v", err)
		}
	}
}
