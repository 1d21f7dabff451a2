// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package charset_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/csvjson/charset"
	"github.com/google/go-cmp/cmp"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"", "UTF-8"},
		{"UTF-8", "UTF-8"},
		{"utf8", "UTF-8"},
		{"ISO-8859-1", "ISO-8859-1"},
		{"latin1", "ISO-8859-1"},
		{"windows-1252", "windows-1252"},
	}
	for _, tc := range tests {
		enc, err := charset.Lookup(tc.name)
		if err != nil {
			t.Errorf("Lookup(%q): unexpected error: %v", tc.name, err)
			continue
		}
		if got := charset.Name(enc); !strings.EqualFold(got, tc.want) {
			t.Errorf("Lookup(%q): got %q, want %q", tc.name, got, tc.want)
		}
	}

	for _, bad := range []string{"klingon", "UTF-99"} {
		if enc, err := charset.Lookup(bad); !errors.Is(err, charset.ErrUnknown) {
			t.Errorf("Lookup(%q): got (%v, %v), want %v", bad, enc, err, charset.ErrUnknown)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	enc, err := charset.Lookup("ISO-8859-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	const text = "nombre;año\nMaría;1987\n"

	var buf bytes.Buffer
	w := charset.NewWriter(&buf, enc)
	if _, err := io.WriteString(w, text); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got, want := buf.Len(), len("nombre;ano\nMaria;1987\n"); got != want {
		t.Errorf("Encoded length: got %d, want %d", got, want)
	}

	path := filepath.Join(t.TempDir(), "latin1.csv")
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}
	f, err := charset.Open(path, enc)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if diff := cmp.Diff(text, string(got)); diff != "" {
		t.Errorf("Decoded (-want, +got):\n%s", diff)
	}
}

func TestStripBOM(t *testing.T) {
	r := charset.NewReader(strings.NewReader("\ufeffid,name\n1,Ana\n"), charset.Default)
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if diff := cmp.Diff("id,name\n1,Ana\n", string(got)); diff != "" {
		t.Errorf("Decoded (-want, +got):\n%s", diff)
	}
}

func TestUnencodable(t *testing.T) {
	enc, err := charset.Lookup("ISO-8859-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	var buf bytes.Buffer
	w := charset.NewWriter(&buf, enc)
	_, werr := io.WriteString(w, "日本")
	cerr := w.Close()
	if werr == nil && cerr == nil {
		t.Error("Writing unencodable text: got no error")
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := charset.Open(filepath.Join(t.TempDir(), "nonesuch"), charset.Default)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open: got %v, want %v", err, os.ErrNotExist)
	}
}
