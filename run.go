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

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/phuslu/log"

	"github.com/cybrota/bantree/banindex"
	"github.com/cybrota/bantree/ingest"
)

type runOptions struct {
	Strategy  banindex.Strategy
	BanPath   string
	QueryPath string // empty or "-" reads stdin
	Config    *Config
	ShowStats bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Clock  clock.Clock
}

// RunReport is what a run did, for logging and --stats.
type RunReport struct {
	Strategy banindex.Strategy
	Records  int
	Skipped  int
	Queries  int
	Found    int
	Height   int
	Stats    banindex.Stats
	Hits     map[string]int
	Laps     []Lap
}

// runBanQueries builds the index from the ban file, then answers every
// query name, one line per query on Stdout.
func runBanQueries(opts runOptions) (*RunReport, error) {
	ix, err := banindex.New(opts.Strategy, opts.Config.Index.Alpha)
	if err != nil {
		return nil, err
	}

	metrics := newRunMetrics(opts.Strategy)
	watch := NewStopwatch(opts.Clock)
	report := &RunReport{Strategy: opts.Strategy}

	err = watch.Time("build", func() error {
		return buildIndex(ix, opts, metrics, report)
	})
	if err != nil {
		return nil, err
	}
	metrics.observeIndex(ix)
	report.Height = ix.Height()
	report.Stats = ix.Stats()
	log.Info().Str("strategy", string(opts.Strategy)).Int("records", report.Records).
		Int("skipped", report.Skipped).Int("height", report.Height).
		Int("rotations", report.Stats.Rotations).Int("rebuilds", report.Stats.Rebuilds).
		Msg("index built")

	var resolver *Resolver
	_ = watch.Time("summarize", func() error {
		resolver = NewResolver(ix, opts.Config.Query, opts.Config.Index.Lookup)
		return nil
	})
	resolver.OnHit(metrics.observeQuery)

	err = watch.Time("query", func() error {
		return answerQueries(resolver, opts, report)
	})
	if err != nil {
		return nil, err
	}

	report.Hits = resolver.Hits()
	report.Laps = watch.Laps()
	metrics.observeLaps(report.Laps)
	log.Info().Int("queries", report.Queries).Int("found", report.Found).
		Dur("elapsed", watch.Total()).Msg("run complete")

	if opts.ShowStats {
		samples, err := metrics.samples()
		if err != nil {
			return report, fmt.Errorf("failed to gather metrics: %w", err)
		}
		fmt.Fprintln(opts.Stderr, renderStats(report, samples))
	}
	return report, nil
}

func buildIndex(ix banindex.Index, opts runOptions, metrics *runMetrics, report *RunReport) error {
	file, err := os.Open(opts.BanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("ban file %s not found", opts.BanPath)
		}
		return fmt.Errorf("failed to open ban file: %w", err)
	}
	defer file.Close()

	var src io.Reader = file
	if opts.Config.Ingest.ShowProgress {
		size := int64(-1)
		if stat, err := file.Stat(); err == nil {
			size = stat.Size()
		}
		var finish func()
		src, finish = ingest.WithProgress(file, size, opts.Stderr)
		defer finish()
	}

	reader := ingest.NewBanReader(src, ingest.WithStrict(opts.Config.Ingest.Strict))
	for reader.Next() {
		rec := reader.Record()
		ix.Insert(rec.User, rec.Server, rec.TimeOfBan)
		metrics.RecordsIngested.Inc()
		report.Records++
	}
	if err := reader.Err(); err != nil {
		return fmt.Errorf("%s: %w", opts.BanPath, err)
	}

	for _, skipped := range reader.Skipped() {
		log.Warn().Int("line", skipped.Line).Str("reason", skipped.Reason).Msg("skipping malformed ban line")
	}
	report.Skipped = len(reader.Skipped())
	metrics.LinesSkipped.Add(float64(report.Skipped))
	return nil
}

func answerQueries(resolver *Resolver, opts runOptions, report *RunReport) error {
	in := opts.Stdin
	if opts.QueryPath != "" && opts.QueryPath != "-" {
		file, err := os.Open(opts.QueryPath)
		if err != nil {
			return fmt.Errorf("failed to open query file: %w", err)
		}
		defer file.Close()
		in = file
	}

	out := bufio.NewWriter(opts.Stdout)
	err := ingest.ScanQueries(in, func(user string) error {
		result := resolver.Resolve(user)
		report.Queries++
		if result.Found {
			report.Found++
		}
		_, err := fmt.Fprintln(out, formatAnswer(user, result))
		return err
	})
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	return err
}
