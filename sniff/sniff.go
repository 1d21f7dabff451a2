// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package sniff guesses the field delimiter of CSV text.
//
// Each candidate delimiter is used to tokenize a sample of records, and the
// candidate is scored by how consistent the resulting record widths are.
// Lower scores are better. A candidate that splits every record into a single
// field is heavily penalized, since that usually means the delimiter does not
// occur in the text at all. Exact ties go to the candidate listed first in
// Candidates.
package sniff

import (
	"encoding/csv"
	"io"
	"log/slog"
	"math"
	"unicode"

	"github.com/creachadair/csvjson/charset"
	"golang.org/x/text/encoding"
)

// Candidates are the delimiters considered, in priority order.
var Candidates = []rune{',', ';', '\t', '|'}

// DefaultMaxRecords is the number of records sampled when the caller does not
// specify a positive limit.
const DefaultMaxRecords = 200

// MaxScore is the upper bound of a candidate score.
const MaxScore = math.MaxInt32

const (
	penaltySingleColumn = 1000
	penaltyInconsistent = 10
)

// A Result is the outcome of scoring one candidate delimiter.
type Result struct {
	Delimiter rune
	Score     int
}

// Score computes the score for a candidate with the given priority index,
// from the widths of the records sampled with that candidate.
//
// With no sampled records the score is MaxScore-(len(Candidates)-1-priority),
// not MaxScore-priority, so the first candidate still wins a tie among empty
// samples and an empty input detects a comma.
func Score(widths []int, priority int) int {
	if len(widths) == 0 {
		return MaxScore - (len(Candidates) - 1 - priority)
	}
	mode := modeWidth(widths)
	var bad int
	for _, w := range widths {
		if w != mode {
			bad++
		}
	}
	score := bad * penaltyInconsistent
	if mode == 1 && len(widths) > 1 {
		score += penaltySingleColumn
	}
	return score*100 + priority
}

// failureScore is the score of a candidate whose sample could not be read.
func failureScore(priority int) int { return MaxScore/2 + priority }

// modeWidth returns the most common value in widths, preferring the larger
// value among equally common ones. It requires len(widths) > 0.
func modeWidth(widths []int) int {
	count := make(map[int]int)
	best, bestN := widths[0], 0
	for _, w := range widths {
		count[w]++
		if n := count[w]; n > bestN || (n == bestN && w > best) {
			best, bestN = w, n
		}
	}
	return best
}

// Options control detection. A nil *Options is ready for use: it samples
// DefaultMaxRecords records, tokenizes quotes strictly, and does not log.
type Options struct {
	// The number of records to sample per candidate. If zero or negative,
	// DefaultMaxRecords is used.
	MaxRecords int

	// If true, a quote inside an unquoted field is an ordinary character,
	// and an undoubled quote inside a quoted field is kept, as for the
	// LazyQuotes setting of a csv.Reader.
	LazyQuotes bool

	// If non-nil, each candidate score is logged at debug level.
	Logger *slog.Logger
}

func (o *Options) maxRecords() int {
	if o == nil || o.MaxRecords <= 0 {
		return DefaultMaxRecords
	}
	return o.MaxRecords
}

func (o *Options) lazyQuotes() bool { return o != nil && o.LazyQuotes }

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Widths reads records from r using delim as the field separator, and
// returns the number of fields in each. At most opts.MaxRecords records are
// read. If tokenizing fails, Widths reports the error along with the widths
// read so far.
func Widths(r io.Reader, delim rune, opts *Options) ([]int, error) {
	maxRecords := opts.maxRecords()
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.TrimLeadingSpace = !unicode.IsSpace(delim) // trimming would eat empty fields
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.LazyQuotes = opts.lazyQuotes()

	var widths []int
	for len(widths) < maxRecords {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return widths, err
		}
		widths = append(widths, len(rec))
	}
	return widths, nil
}

// An Opener returns a fresh reader positioned at the start of the input.
// Detection calls it once per candidate.
type Opener func() (io.ReadCloser, error)

// DetectReader scores each of the Candidates against the input provided by
// open, and returns the best result. Failures to open or tokenize the input
// are reflected in the score and are not reported.
func DetectReader(open Opener, opts *Options) Result {
	logger := opts.logger()
	best := Result{Delimiter: ','}
	found := false
	for i, cand := range Candidates {
		score := scoreCandidate(open, cand, i, opts)
		logger.Debug("delimiter candidate", "delimiter", string(cand), "score", score)
		if !found || score < best.Score {
			best = Result{Delimiter: cand, Score: score}
			found = true
		}
	}
	return best
}

func scoreCandidate(open Opener, delim rune, priority int, opts *Options) int {
	rc, err := open()
	if err != nil {
		return failureScore(priority)
	}
	defer rc.Close()
	widths, err := Widths(rc, delim, opts)
	if err != nil {
		return failureScore(priority)
	}
	return Score(widths, priority)
}

// Detect reports the most likely delimiter of the CSV file at path, whose
// contents are in the charset enc (nil means UTF-8). At most maxRecords
// records are sampled per candidate; if maxRecords <= 0, DefaultMaxRecords
// is used. Detect always returns one of the Candidates.
func Detect(path string, enc encoding.Encoding, maxRecords int) rune {
	return DetectReader(FileOpener(path, enc), &Options{MaxRecords: maxRecords}).Delimiter
}

// FileOpener returns an Opener for the file at path, decoding from enc.
func FileOpener(path string, enc encoding.Encoding) Opener {
	return func() (io.ReadCloser, error) {
		f, err := charset.Open(path, enc)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}
