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
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func at(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// randomRecords returns n records over a small user space so that
// duplicates are common.
func randomRecords(seed int64, n, users int) []BanRecord {
	rng := rand.New(rand.NewSource(seed))
	records := make([]BanRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, BanRecord{
			User:      fmt.Sprintf("user%03d", rng.Intn(users)),
			Server:    fmt.Sprintf("srv%d", rng.Intn(5)),
			TimeOfBan: at(int64(rng.Intn(1_000_000))),
		})
	}
	return records
}

func insertAll(ix Index, records []BanRecord) {
	for _, rec := range records {
		ix.Insert(rec.User, rec.Server, rec.TimeOfBan)
	}
}

func walkedKeys(w Walker) []string {
	var keys []string
	w.Walk(func(rec BanRecord) bool {
		keys = append(keys, rec.User)
		return true
	})
	return keys
}

func requireSortedKeys(t *testing.T, w Walker) {
	t.Helper()
	keys := walkedKeys(w)
	for i := 1; i < len(keys); i++ {
		require.LessOrEqual(t, keys[i-1], keys[i], "in-order walk out of order at %d", i)
	}
}

// checkAVL recomputes heights independently and fails on any stored balance
// factor that disagrees or is out of range. It returns the subtree height.
func checkAVL(t *testing.T, node *avlNode) int {
	t.Helper()
	if node == nil {
		return 0
	}
	left := checkAVL(t, node.left)
	right := checkAVL(t, node.right)
	require.Equal(t, right-left, node.balance, "stored balance of %q", node.record.User)
	require.LessOrEqual(t, node.balance, 1)
	require.GreaterOrEqual(t, node.balance, -1)
	return max(left, right) + 1
}

func avlPreorder(node *avlNode) []string {
	if node == nil {
		return nil
	}
	out := []string{node.record.User}
	out = append(out, avlPreorder(node.left)...)
	return append(out, avlPreorder(node.right)...)
}

func scapegoatPreorder(node *scapegoatNode) []string {
	if node == nil {
		return nil
	}
	out := []string{node.record.User}
	out = append(out, scapegoatPreorder(node.left)...)
	return append(out, scapegoatPreorder(node.right)...)
}

// requireWeightBalanced fails if any node under root breaks the alpha
// weight bound. It returns the subtree size.
func requireWeightBalanced(t *testing.T, node *scapegoatNode, alpha float64) int {
	t.Helper()
	if node == nil {
		return 0
	}
	left := requireWeightBalanced(t, node.left, alpha)
	right := requireWeightBalanced(t, node.right, alpha)
	size := left + right + 1
	require.LessOrEqual(t, float64(left), alpha*float64(size), "left of %q", node.record.User)
	require.LessOrEqual(t, float64(right), alpha*float64(size), "right of %q", node.record.User)
	return size
}
