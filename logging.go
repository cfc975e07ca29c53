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
	"fmt"
	"io"
	"strings"

	"github.com/phuslu/log"
)

func parseLogLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func validateLogLevel(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error", "":
		return nil
	default:
		return fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", level)
	}
}

// setupLogging points the default logger at w. Answers go to stdout, so
// logs belong on stderr.
func setupLogging(level string, w io.Writer) {
	log.DefaultLogger = log.Logger{
		Level:      parseLogLevel(level),
		Caller:     1,
		TimeFormat: "2006-01-02 15:04:05",
		Writer:     &log.IOWriter{Writer: w},
	}
	log.Debug().Str("level", level).Msg("logging configured")
}
