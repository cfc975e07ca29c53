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
	"time"

	"github.com/benbjohnson/clock"
)

// Lap is one timed phase of a run.
type Lap struct {
	Name    string
	Elapsed time.Duration
}

// Stopwatch times the phases of a run against an injectable clock.
type Stopwatch struct {
	clock clock.Clock
	laps  []Lap
}

func NewStopwatch(c clock.Clock) *Stopwatch {
	if c == nil {
		c = clock.New()
	}
	return &Stopwatch{clock: c}
}

// Time runs fn and records how long it took under name, even when fn fails.
func (s *Stopwatch) Time(name string, fn func() error) error {
	start := s.clock.Now()
	err := fn()
	s.laps = append(s.laps, Lap{Name: name, Elapsed: s.clock.Since(start)})
	return err
}

func (s *Stopwatch) Laps() []Lap {
	return append([]Lap(nil), s.laps...)
}

func (s *Stopwatch) Total() time.Duration {
	var total time.Duration
	for _, lap := range s.laps {
		total += lap.Elapsed
	}
	return total
}
