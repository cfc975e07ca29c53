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

	"github.com/cybrota/bantree/banindex"
	"github.com/cybrota/bantree/dateutil"
)

// formatAnswer renders one query result as a single line.
func formatAnswer(user string, result banindex.QueryResult) string {
	if !result.Found {
		return fmt.Sprintf("%s is not currently banned", user)
	}
	times := "times"
	if result.Count == 1 {
		times = "time"
	}
	return fmt.Sprintf("%s was banned %d %s, most recently on %s",
		user, result.Count, times, dateutil.FormatDateTime(result.MostRecent))
}
