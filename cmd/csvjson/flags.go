// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// config holds the command-line settings.
type config struct {
	In          string
	Out         string
	Delim       string
	Header      bool
	NoHeader    bool
	Schema      string
	EmptyAsNull bool
	StringsOnly bool
	NDJSON      bool
	Pretty      bool
	Relaxed     bool
	Limit       int
	Encoding    string
	LogLevel    string
	LogFormat   string
	ShowVersion bool
}

// loadEnv loads variables from the file named by CSVJSON_ENV_FILE (default
// ".env") into the environment, without replacing variables that are already
// set. A missing file is not an error.
func loadEnv() (string, error) {
	name := getEnv("CSVJSON_ENV_FILE", ".env")
	if err := godotenv.Load(name); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("load %s: %w", name, err)
	}
	return name, nil
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}
	fset := flag.NewFlagSet("csvjson", flag.ContinueOnError)
	fset.SetOutput(stderr)

	// Define flags with environment variable fallback
	fset.StringVar(&cfg.In, "in", getEnv("CSVJSON_IN", ""),
		"Path of the CSV input (env: CSVJSON_IN)")
	fset.StringVar(&cfg.Out, "out", getEnv("CSVJSON_OUT", ""),
		"Path of the JSON output (env: CSVJSON_OUT)")
	fset.StringVar(&cfg.Delim, "delim", getEnv("CSVJSON_DELIM", "auto"),
		`Field delimiter: auto, ",", ";", "\t", tab, "|" (env: CSVJSON_DELIM)`)
	fset.BoolVar(&cfg.Header, "header", getEnvBool("CSVJSON_HEADER", false),
		"The first record is a header (env: CSVJSON_HEADER)")
	fset.BoolVar(&cfg.NoHeader, "no-header", getEnvBool("CSVJSON_NO_HEADER", false),
		"The input has no header; name columns by schema or position (env: CSVJSON_NO_HEADER)")
	fset.StringVar(&cfg.Schema, "schema", getEnv("CSVJSON_SCHEMA", ""),
		"Path of a JSON schema description (env: CSVJSON_SCHEMA)")
	fset.BoolVar(&cfg.EmptyAsNull, "empty-as-null", getEnvBool("CSVJSON_EMPTY_AS_NULL", false),
		"Convert blank fields to null (env: CSVJSON_EMPTY_AS_NULL)")
	fset.BoolVar(&cfg.StringsOnly, "strings-only", getEnvBool("CSVJSON_STRINGS_ONLY", false),
		"Disable type inference (env: CSVJSON_STRINGS_ONLY)")
	fset.BoolVar(&cfg.NDJSON, "ndjson", getEnvBool("CSVJSON_NDJSON", false),
		"Write one JSON object per line (env: CSVJSON_NDJSON)")
	fset.BoolVar(&cfg.Pretty, "pretty", getEnvBool("CSVJSON_PRETTY", false),
		"Indent the JSON array output (env: CSVJSON_PRETTY)")
	fset.BoolVar(&cfg.Relaxed, "relaxed-quotes", getEnvBool("CSVJSON_RELAXED_QUOTES", false),
		"Repair misplaced quotes before converting (env: CSVJSON_RELAXED_QUOTES)")
	fset.IntVar(&cfg.Limit, "limit", getEnvInt("CSVJSON_LIMIT", 0),
		"Convert at most this many records, 0 for all (env: CSVJSON_LIMIT)")
	fset.StringVar(&cfg.Encoding, "encoding", getEnv("CSVJSON_ENCODING", "UTF-8"),
		"Charset of the input and output (env: CSVJSON_ENCODING)")
	fset.StringVar(&cfg.LogLevel, "log-level", getEnv("CSVJSON_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: CSVJSON_LOG_LEVEL)")
	fset.StringVar(&cfg.LogFormat, "log-format", getEnv("CSVJSON_LOG_FORMAT", "text"),
		"Log format: text, json (env: CSVJSON_LOG_FORMAT)")
	fset.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	fset.Usage = func() {
		fmt.Fprintf(fset.Output(), `Usage: csvjson --in <input.csv> --out <output.json> [options]

Convert CSV records to a JSON array or to newline-delimited JSON.

Options:
`)
		fset.PrintDefaults()
		fmt.Fprint(fset.Output(), `
Exit status is 0 on success, 1 for I/O errors, 2 for invalid settings,
and 3 if the input does not match the schema.
`)
	}

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	if fset.NArg() != 0 {
		return nil, fmt.Errorf("unexpected arguments: %q", fset.Args())
	}
	if cfg.ShowVersion {
		return cfg, nil
	}
	if cfg.In == "" {
		return nil, errors.New("missing --in <path>")
	}
	if cfg.Out == "" {
		return nil, errors.New("missing --out <path>")
	}
	return cfg, nil
}

// getEnv returns environment variable value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
