// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package csvjson

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creachadair/csvjson/schema"
)

// A ConfigError reports an invalid setting. Configuration errors are detected
// before any output is written.
type ConfigError struct {
	Message string

	err error
}

// Error satisfies the error interface.
func (c *ConfigError) Error() string {
	if c.err != nil {
		return fmt.Sprintf("invalid configuration: %s: %v", c.Message, c.err)
	}
	return "invalid configuration: " + c.Message
}

// Unwrap supports error wrapping.
func (c *ConfigError) Unwrap() error { return c.err }

func configError(err error, msg string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(msg, args...), err: err}
}

// A SchemaMismatchError reports that the input does not satisfy the schema.
//
// If the header lacks columns the schema requires, Missing lists them and
// Row is 0. Otherwise, the field in column Column of record Row (1-based, not
// counting the header) has text Raw that is not valid for type Want.
type SchemaMismatchError struct {
	Row     int
	Column  string
	Raw     string
	Want    schema.ColumnType
	Missing []string

	err error
}

// Error satisfies the error interface.
func (s *SchemaMismatchError) Error() string {
	if len(s.Missing) != 0 {
		return fmt.Sprintf("schema mismatch: header is missing required columns: %s",
			strings.Join(s.Missing, ", "))
	}
	return fmt.Sprintf("schema mismatch: row %d column %q: value %q is not compatible with type %v",
		s.Row, s.Column, s.Raw, s.Want)
}

// Unwrap supports error wrapping.
func (s *SchemaMismatchError) Unwrap() error { return s.err }

// IsConfig reports whether err is or wraps a *ConfigError.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsSchemaMismatch reports whether err is or wraps a *SchemaMismatchError.
func IsSchemaMismatch(err error) bool {
	var se *SchemaMismatchError
	return errors.As(err, &se)
}
