// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package sanitize_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/csvjson/charset"
	"github.com/creachadair/csvjson/sanitize"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"
)

func repair(t *testing.T, input string, delims []rune) string {
	t.Helper()
	var buf bytes.Buffer
	if err := sanitize.Repair(&buf, strings.NewReader(input), delims); err != nil {
		t.Fatalf("Repair(%q): unexpected error: %v", input, err)
	}
	return buf.String()
}

func TestRepair(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"a,b,c\n1,2,3\n", "a,b,c\n1,2,3\n"},

		// Space inside and outside of quotes, not after a closing quote.
		{`"a b", c d ,e`, `"a b", c d ,e`},

		// Whitespace between a closing quote and a delimiter.
		{`"value"  ,next`, `"value",next`},
		{`"value" ;next`, `"value";next`},
		{`"value"  |next`, `"value"|next`},
		{"\"value\" \u00a0,next", `"value",next`},
		{"\"value\" \t,next", "\"value\"\t,next"},

		// Whitespace between a closing quote and a line break.
		{"\"a\"  \nb", "\"a\"\nb"},
		{"\"a\" \r\nb", "\"a\"\r\nb"},

		// Whitespace between a closing quote and other text.
		{`"a" b`, `"a" b`},
		{`"a"    b`, `"a" b`},
		{`"a"  "b"`, `"a" "b"`},

		// Trailing whitespace at the end of input is dropped.
		{`"a"   `, `"a"`},

		// Line breaks and tabs after a closing quote are left alone.
		{"\"a\"\nb", "\"a\"\nb"},
		{"\"a\"\tb", "\"a\"\tb"},
		{"\"a\"\t \tb", "\"a\"\t \tb"},

		// Escaped quotes inside a quoted field.
		{`"Dijo ""hola"""`, `"Dijo ""hola"""`},
		{`"x""" ,y`, `"x""",y`},
		{`""  ,x`, `"",x`},

		// Whitespace inside a quoted field is preserved.
		{"\"a  \n  b\"  ,c", "\"a  \n  b\",c"},

		// Unterminated quoted field is copied.
		{`"abc`, `"abc`},
		{`"abc"`, `"abc"`},

		// Only the first rune after a closing quote is special.
		{`"a"x  ,b`, `"a"x  ,b`},
	}
	for _, tc := range tests {
		if got := repair(t, tc.input, nil); got != tc.want {
			t.Errorf("Repair(%q): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestRepairDelims(t *testing.T) {
	// With only a colon delimiter, a comma is ordinary text.
	const input = `"a"  :b  "c"  ,d`
	if got, want := repair(t, input, []rune{':'}), `"a":b  "c" ,d`; got != want {
		t.Errorf("Repair(%q): got %q, want %q", input, got, want)
	}
	if got, want := repair(t, input, nil), `"a" :b  "c",d`; got != want {
		t.Errorf("Repair(%q): got %q, want %q", input, got, want)
	}
}

func TestRepairParses(t *testing.T) {
	const input = "id,text\n1,\"Dijo \"\"hola\"\"\"  \n2,\"sí\"  ,\n"
	out := repair(t, input, nil)

	r := csv.NewReader(strings.NewReader(out))
	r.FieldsPerRecord = -1
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll %q: %v", out, err)
	}
	want := [][]string{
		{"id", "text"},
		{"1", `Dijo "hola"`},
		{"2", "sí", ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Records (-want, +got):\n%s", diff)
	}
}

func TestToTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.csv")
	const input = "name,city\n\"Zoë\"  ,\"Málaga\"\n"
	if err := os.WriteFile(path, []byte(input), 0600); err != nil {
		t.Fatalf("Write input: %v", err)
	}

	tmp, err := sanitize.ToTemp(path, charset.Default, nil)
	if err != nil {
		t.Fatalf("ToTemp: unexpected error: %v", err)
	}
	defer tmp.Remove()

	if tmp.Path() == path {
		t.Errorf("ToTemp returned the input path %q", path)
	}
	got, err := os.ReadFile(tmp.Path())
	if err != nil {
		t.Fatalf("Read output: %v", err)
	}
	if want := "name,city\n\"Zoë\",\"Málaga\"\n"; string(got) != want {
		t.Errorf("Output: got %q, want %q", got, want)
	}

	// The input is not modified.
	if orig, err := os.ReadFile(path); err != nil {
		t.Fatalf("Read input: %v", err)
	} else if string(orig) != input {
		t.Errorf("Input changed: got %q, want %q", orig, input)
	}

	// Removing the file twice is harmless.
	name := tmp.Path()
	if err := tmp.Remove(); err != nil {
		t.Errorf("Remove: unexpected error: %v", err)
	}
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Errorf("Stat %q after Remove: got %v, want not-exist", name, err)
	}
	if err := tmp.Remove(); err != nil {
		t.Errorf("Remove again: unexpected error: %v", err)
	}
}

func TestToTempCharset(t *testing.T) {
	enc := charmap.ISO8859_1
	src, err := enc.NewEncoder().String("a,b\n\"café\"  ,x\n")
	if err != nil {
		t.Fatalf("Encode input: %v", err)
	}
	path := filepath.Join(t.TempDir(), "latin1.csv")
	if err := os.WriteFile(path, []byte(src), 0600); err != nil {
		t.Fatalf("Write input: %v", err)
	}

	tmp, err := sanitize.ToTemp(path, enc, nil)
	if err != nil {
		t.Fatalf("ToTemp: unexpected error: %v", err)
	}
	defer tmp.Remove()

	raw, err := os.ReadFile(tmp.Path())
	if err != nil {
		t.Fatalf("Read output: %v", err)
	}
	got, err := enc.NewDecoder().String(string(raw))
	if err != nil {
		t.Fatalf("Decode output: %v", err)
	}
	if want := "a,b\n\"café\",x\n"; got != want {
		t.Errorf("Output: got %q, want %q", got, want)
	}
	if bytes.Contains(raw, []byte("é")) {
		t.Errorf("Output %q is UTF-8, want ISO-8859-1", raw)
	}
}

func TestToTempMissing(t *testing.T) {
	tmp, err := sanitize.ToTemp(filepath.Join(t.TempDir(), "nonesuch.csv"), nil, nil)
	if err == nil {
		tmp.Remove()
		t.Fatal("ToTemp: got nil error for a missing file")
	}
}
