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

package banindex

import (
	"sort"
	"time"
)

// SummaryEntry is the aggregated view of every ban for one user.
type SummaryEntry struct {
	Count      int
	MostRecent time.Time
}

// Summary maps a user to its aggregated bans. Build it once after the tree
// is complete and treat it as read-only.
type Summary map[string]SummaryEntry

// BuildRecordSummary walks the tree once and aggregates count and most
// recent ban time per user.
func BuildRecordSummary(w Walker) Summary {
	summary := make(Summary)
	w.Walk(func(rec BanRecord) bool {
		entry, ok := summary[rec.User]
		if !ok || rec.TimeOfBan.After(entry.MostRecent) {
			entry.MostRecent = rec.TimeOfBan
		}
		entry.Count++
		summary[rec.User] = entry
		return true
	})
	return summary
}

// Lookup answers a query from the summary.
func (s Summary) Lookup(user string) QueryResult {
	entry, ok := s[user]
	if !ok {
		return NotFound
	}
	return QueryResult{Found: true, Count: entry.Count, MostRecent: entry.MostRecent}
}

// Users returns the summarized user names in ascending order.
func (s Summary) Users() []string {
	users := make([]string, 0, len(s))
	for user := range s {
		users = append(users, user)
	}
	sort.Strings(users)
	return users
}
