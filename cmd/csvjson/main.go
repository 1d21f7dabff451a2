// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program csvjson converts CSV files to JSON.
//
// Usage:
//
//	csvjson --in data.csv --out data.json --header --pretty
//	csvjson --in data.csv --out data.ndjson --header --ndjson --delim auto
//
// Every flag may also be set by an environment variable named CSVJSON_ and
// the flag name in upper case, with dashes as underscores. Variables are also
// read from a .env file in the working directory, if present.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/creachadair/csvjson"
)

// Exit codes.
const (
	exitOK       = 0
	exitIO       = 1
	exitConfig   = 2
	exitMismatch = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	envFile, err := loadEnv()
	if err != nil {
		fmt.Fprintf(stderr, "csvjson: %v\n", err)
		return exitConfig
	}
	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	} else if err != nil {
		fmt.Fprintf(stderr, "csvjson: %v\n", err)
		return exitConfig
	}
	if cfg.ShowVersion {
		fmt.Fprintln(stdout, "csvjson", version())
		return exitOK
	}

	log := setupLogger(stderr, cfg.LogLevel, cfg.LogFormat)
	if envFile != "" {
		log.Debug("loaded environment file", "path", envFile)
	}

	delim, err := csvjson.ParseDelimiter(cfg.Delim)
	if err != nil {
		log.Error("invalid settings", "error", err)
		return exitConfig
	}
	job := csvjson.Job{
		Input:      cfg.In,
		Output:     cfg.Out,
		Charset:    cfg.Encoding,
		SchemaPath: cfg.Schema,
		Relaxed:    cfg.Relaxed,
		Options: csvjson.Options{
			Delimiter:   delim,
			Header:      cfg.Header,
			NoHeader:    cfg.NoHeader,
			EmptyAsNull: cfg.EmptyAsNull,
			StringsOnly: cfg.StringsOnly,
			NDJSON:      cfg.NDJSON,
			Pretty:      cfg.Pretty,
			Limit:       cfg.Limit,
			Logger:      log,
		},
	}
	log.Debug("starting conversion",
		"in", cfg.In,
		"out", cfg.Out,
		"delim", cfg.Delim,
		"header", cfg.Header,
		"no_header", cfg.NoHeader,
		"ndjson", cfg.NDJSON,
		"pretty", cfg.Pretty,
		"encoding", cfg.Encoding,
		"empty_as_null", cfg.EmptyAsNull,
		"strings_only", cfg.StringsOnly,
		"relaxed_quotes", cfg.Relaxed,
		"limit", cfg.Limit,
		"schema", cfg.Schema,
	)

	st, err := csvjson.Run(job)
	switch {
	case err == nil:
		log.Info("conversion complete",
			"records", st.Records,
			"delimiter", csvjson.DelimiterName(st.Delimiter),
			"out", cfg.Out,
		)
		return exitOK
	case csvjson.IsSchemaMismatch(err):
		log.Error("input does not match schema", "error", err)
		return exitMismatch
	case csvjson.IsConfig(err):
		log.Error("invalid settings", "error", err)
		return exitConfig
	default:
		log.Error("conversion failed", "error", err)
		return exitIO
	}
}

func version() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}
