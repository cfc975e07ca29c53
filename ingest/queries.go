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

package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ScanQueries calls fn with every user name in r, one per line, in order.
// Surrounding whitespace is trimmed and blank lines are skipped. An error
// from fn stops the scan and is returned as is.
func ScanQueries(r io.Reader, fn func(user string) error) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		user := strings.TrimSpace(scanner.Text())
		if user == "" {
			continue
		}
		if err := fn(user); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read queries: %w", err)
	}
	return nil
}

// ReadQueries collects every user name in r.
func ReadQueries(r io.Reader) ([]string, error) {
	var users []string
	err := ScanQueries(r, func(user string) error {
		users = append(users, user)
		return nil
	})
	return users, err
}
