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
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cybrota/bantree/banindex"
)

func TestCacheAnswerAndGetAnswer(t *testing.T) {
	c := NewAnswerCache(time.Minute)
	user := "alice"
	answer := banindex.QueryResult{Found: true, Count: 2, MostRecent: time.Unix(200, 0).UTC()}

	_, ok := GetAnswer(c, user)
	require.False(t, ok, "empty cache must miss")

	CacheAnswer(c, user, answer)
	got, ok := GetAnswer(c, user)
	require.True(t, ok)
	require.Equal(t, answer, got)

	// Negative answers are cached too.
	CacheAnswer(c, "carol", banindex.NotFound)
	got, ok = GetAnswer(c, "carol")
	require.True(t, ok)
	require.False(t, got.Found)
}

func TestAnswerCacheExpiration(t *testing.T) {
	c := NewAnswerCache(100 * time.Millisecond)
	CacheAnswer(c, "alice", banindex.QueryResult{Found: true, Count: 1})

	_, ok := GetAnswer(c, "alice")
	require.True(t, ok)

	time.Sleep(150 * time.Millisecond)

	_, ok = GetAnswer(c, "alice")
	require.False(t, ok, "answer should have expired")
}
