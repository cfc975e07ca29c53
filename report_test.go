package main

import (
	"testing"
	"time"

	"github.com/cybrota/bantree/banindex"
)

func TestFormatAnswer(t *testing.T) {
	tests := []struct {
		user     string
		result   banindex.QueryResult
		expected string
	}{
		{
			user:     "alice",
			result:   banindex.QueryResult{Found: true, Count: 2, MostRecent: time.Unix(200, 0).UTC()},
			expected: "alice was banned 2 times, most recently on Thursday, 01 Jan 1970 12:03:20 AM",
		},
		{
			user:     "bob",
			result:   banindex.QueryResult{Found: true, Count: 1, MostRecent: time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
			expected: "bob was banned 1 time, most recently on Friday, 01 Mar 2024 10:20:30 AM",
		},
		{
			user:     "dave",
			result:   banindex.QueryResult{Found: true, Count: 3, MostRecent: time.Date(2024, 3, 1, 13, 45, 0, 0, time.UTC)},
			expected: "dave was banned 3 times, most recently on Friday, 01 Mar 2024 01:45:00 PM",
		},
		{
			user:     "carol",
			result:   banindex.NotFound,
			expected: "carol is not currently banned",
		},
	}

	for _, tc := range tests {
		if got := formatAnswer(tc.user, tc.result); got != tc.expected {
			t.Errorf("formatAnswer(%q) = %q; want %q", tc.user, got, tc.expected)
		}
	}
}
