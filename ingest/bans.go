// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ingest turns line-oriented text into validated ban records and
// query names. Nothing malformed gets past it into the index.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/cybrota/bantree/banindex"
	"github.com/cybrota/bantree/dateutil"
)

// LineError describes a ban line that could not be turned into a record.
type LineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Option configures a BanReader.
type Option func(*BanReader)

// WithStrict makes the first malformed line stop the reader with a
// *LineError instead of being skipped.
func WithStrict(strict bool) Option {
	return func(br *BanReader) {
		br.strict = strict
	}
}

// BanReader reads one ban per line: USER SERVER TIMESTAMP. Fields are
// whitespace separated and follow shell quoting: double quotes and
// backslash escapes group and escape characters, single quotes keep
// everything literal. An unquoted ; & | < or > makes the line malformed.
// Blank lines and lines starting with '#' are ignored.
type BanReader struct {
	scanner *bufio.Scanner
	strict  bool
	line    int
	record  banindex.BanRecord
	skipped []*LineError
	err     error
}

func NewBanReader(r io.Reader, opts ...Option) *BanReader {
	scanner := bufio.NewScanner(r)
	// Large ban exports can carry long quoted names
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	br := &BanReader{scanner: scanner}
	for _, opt := range opts {
		opt(br)
	}
	return br
}

// Next advances to the next valid record. It returns false at the end of
// input or on error; check Err afterwards.
func (br *BanReader) Next() bool {
	if br.err != nil {
		return false
	}
	for br.scanner.Scan() {
		br.line++
		text := strings.TrimSpace(br.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		rec, lineErr := parseBanLine(br.line, text)
		if lineErr != nil {
			if br.strict {
				br.err = lineErr
				return false
			}
			br.skipped = append(br.skipped, lineErr)
			continue
		}
		br.record = rec
		return true
	}
	if err := br.scanner.Err(); err != nil {
		br.err = fmt.Errorf("failed to read ban records: %w", err)
	}
	return false
}

// Record returns the record read by the last successful Next.
func (br *BanReader) Record() banindex.BanRecord {
	return br.record
}

func (br *BanReader) Err() error {
	return br.err
}

// Skipped lists malformed lines dropped so far (never populated in strict mode).
func (br *BanReader) Skipped() []*LineError {
	return br.skipped
}

// Lines is the number of input lines consumed so far.
func (br *BanReader) Lines() int {
	return br.line
}

func parseBanLine(line int, text string) (banindex.BanRecord, *LineError) {
	parser := shellwords.NewParser()
	parser.ParseEnv = false
	parser.ParseBacktick = false
	fields, err := parser.Parse(text)
	if err != nil {
		return banindex.BanRecord{}, &LineError{Line: line, Text: text, Reason: err.Error()}
	}
	// Parse stops at an unquoted ; & | < or > and reports where.
	if parser.Position >= 0 {
		return banindex.BanRecord{}, &LineError{
			Line:   line,
			Text:   text,
			Reason: fmt.Sprintf("unexpected shell operator at column %d (quote fields that contain ;&|<>)", parser.Position+1),
		}
	}
	if len(fields) != 3 {
		return banindex.BanRecord{}, &LineError{
			Line:   line,
			Text:   text,
			Reason: fmt.Sprintf("expected 3 fields (user server timestamp), got %d", len(fields)),
		}
	}
	if fields[0] == "" {
		return banindex.BanRecord{}, &LineError{Line: line, Text: text, Reason: "empty user"}
	}

	ts, err := dateutil.ParseBanTime(fields[2])
	if err != nil {
		return banindex.BanRecord{}, &LineError{Line: line, Text: text, Reason: err.Error()}
	}
	return banindex.BanRecord{User: fields[0], Server: fields[1], TimeOfBan: ts}, nil
}
