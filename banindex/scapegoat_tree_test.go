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
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func newScapegoat(t *testing.T, alpha float64) *ScapegoatTree {
	t.Helper()
	tree, err := NewScapegoatTree(alpha)
	require.NoError(t, err)
	return tree
}

func insertKeys(tree Index, keys ...string) {
	for i, key := range keys {
		tree.Insert(key, "srv", at(int64(i)))
	}
}

func TestNewScapegoatTreeRejectsAlpha(t *testing.T) {
	for _, alpha := range []float64{0, 0.5, 1, 1.5, -0.7, math.NaN()} {
		_, err := NewScapegoatTree(alpha)
		require.ErrorIs(t, err, ErrInvalidAlpha, "alpha %v", alpha)
	}
	tree := newScapegoat(t, 0.51)
	require.Equal(t, 0.51, tree.Alpha())
}

func TestScapegoatFirstInsertBecomesRoot(t *testing.T) {
	tree := newScapegoat(t, 0.75)
	require.Equal(t, 0, tree.Height())

	tree.Insert("alice", "s1", at(100))
	require.Equal(t, "alice", tree.root.record.User)
	require.Equal(t, 1, tree.Len())
	require.Equal(t, 0, tree.HeightLimit())
	require.Equal(t, Stats{Insertions: 1}, tree.Stats())
}

func TestScapegoatRootIsScapegoat(t *testing.T) {
	// With alpha 0.55 the fifth key of a chain is at depth 4 > 2+1. On the
	// path a, b, c are all out of balance and the root is the shallowest of
	// them, so the whole tree is rebuilt.
	tree := newScapegoat(t, 0.55)
	insertKeys(tree, "a", "b", "c", "d")
	require.Equal(t, 0, tree.Stats().Rebuilds)
	require.Equal(t, []string{"a", "b", "c", "d"}, scapegoatPreorder(tree.root))

	a := tree.root
	b := a.right
	c := b.right
	d := c.right
	leaf := &scapegoatNode{record: BanRecord{User: "e"}}
	d.right = leaf
	tree.size++
	require.False(t, tree.isAlphaBalanced(2, 0, 3), "c")
	require.False(t, tree.isAlphaBalanced(3, 0, 4), "b")
	require.False(t, tree.isAlphaBalanced(4, 0, 5), "a")
	require.True(t, tree.isAlphaBalanced(1, 0, 2), "d")
	require.Equal(t, 0, tree.findScapegoat([]*scapegoatNode{a, b, c, d}, leaf))
	d.right = nil
	tree.size--

	tree.Insert("e", "srv", at(5))
	require.Equal(t, 1, tree.Stats().Rebuilds)
	require.Equal(t, 5, tree.Stats().RebuiltNodes)
	// Upper median at every level.
	require.Equal(t, []string{"c", "b", "a", "e", "d"}, scapegoatPreorder(tree.root))
}

func TestScapegoatRebuildsInteriorSubtree(t *testing.T) {
	tree := newScapegoat(t, 0.55)
	insertKeys(tree, "n", "i", "q", "j", "r", "k", "a", "z", "u", "t")

	stats := tree.Stats()
	require.Equal(t, 1, stats.Rebuilds)
	require.Equal(t, 5, stats.RebuiltNodes)
	require.Equal(t, "n", tree.root.record.User, "root must survive an interior rebuild")
	require.Equal(t, []string{"n", "i", "a", "j", "k", "t", "r", "q", "z", "u"}, scapegoatPreorder(tree.root))
	requireWeightBalanced(t, tree.root.right, tree.Alpha())
}

func TestScapegoatMonotonicHeight(t *testing.T) {
	tree := newScapegoat(t, 0.75)
	for i := 0; i < 200; i++ {
		tree.Insert(fmt.Sprintf("user%03d", i), "srv", at(int64(i)))
		edges := tree.Height() - 1
		require.LessOrEqual(t, edges, tree.HeightLimit()+1, "after %d inserts", i+1)
	}
	// floor(log2(200)/log2(4/3)) + 1
	require.Equal(t, 18, tree.HeightLimit())
	require.LessOrEqual(t, tree.Height()-1, 19)
	require.Less(t, tree.Height(), 200/4)
	require.Greater(t, tree.Stats().Rebuilds, 0)
	requireSortedKeys(t, tree)
}

func TestScapegoatHeightBoundAfterEveryInsert(t *testing.T) {
	for _, alpha := range []float64{0.51, 0.55, 0.6, 2.0 / 3, 0.75, 0.9, 0.99} {
		t.Run(fmt.Sprintf("alpha=%.2f", alpha), func(t *testing.T) {
			for seed := int64(1); seed <= 4; seed++ {
				tree := newScapegoat(t, alpha)
				for i, rec := range randomRecords(seed, 600, 90) {
					tree.Insert(rec.User, rec.Server, rec.TimeOfBan)
					require.Equal(t, i+1, tree.Len())
					require.LessOrEqual(t, tree.Height()-1, tree.HeightLimit()+1)
				}
				requireSortedKeys(t, tree)
			}
		})
	}
}

func TestScapegoatDescendingAndDuplicateRuns(t *testing.T) {
	tree := newScapegoat(t, 0.6)
	for i := 500; i > 0; i-- {
		tree.Insert(fmt.Sprintf("user%04d", i), "srv", at(int64(i)))
		require.LessOrEqual(t, tree.Height()-1, tree.HeightLimit()+1)
	}
	for i := 0; i < 100; i++ {
		tree.Insert("user0250", "srv", at(int64(10_000+i)))
		require.LessOrEqual(t, tree.Height()-1, tree.HeightLimit()+1)
	}
	requireSortedKeys(t, tree)
	require.Equal(t, QueryResult{Found: true, Count: 101, MostRecent: at(10_099)}, tree.Query("user0250"))
}

func TestBuildBalancedIsWeightBalanced(t *testing.T) {
	for n := 1; n <= 300; n++ {
		records := make([]BanRecord, n)
		for i := range records {
			records[i] = BanRecord{User: fmt.Sprintf("u%04d", i)}
		}
		root := buildBalanced(records)
		require.Equal(t, n, requireWeightBalanced(t, root, 0.51))
		require.Equal(t, records, flatten(root))
	}
}

func TestScapegoatIsLooselyWeightBalanced(t *testing.T) {
	// A five-node chain is within the height limit, so no rebuild happens even
	// though the root carries 4 of 5 nodes on one side (4 > 0.75*5).
	tree := newScapegoat(t, 0.75)
	insertKeys(tree, "m", "n", "o", "p", "q")
	require.Equal(t, 0, tree.Stats().Rebuilds)
	require.Equal(t, 4, subtreeSize(tree.root.right))
	require.LessOrEqual(t, tree.Height()-1, tree.HeightLimit()+1)
}

func TestFlattenHandlesLongChains(t *testing.T) {
	var root *scapegoatNode
	for i := 0; i < 50_000; i++ {
		root = &scapegoatNode{record: BanRecord{User: fmt.Sprintf("u%06d", 50_000-i)}, right: root}
	}
	records := flatten(root)
	require.Len(t, records, 50_000)
	require.Less(t, records[0].User, records[len(records)-1].User)

	rebuilt := buildBalanced(records)
	require.Equal(t, 16, scapegoatHeight(rebuilt))
}

func TestFindScapegoatPanicsWhenPathIsBalanced(t *testing.T) {
	tree := newScapegoat(t, 0.75)
	insertKeys(tree, "b", "a", "c")

	require.PanicsWithError(t,
		"banindex: invariant violated in insert: depth 1 exceeds limit 4 but no ancestor is unbalanced",
		func() { tree.findScapegoat([]*scapegoatNode{tree.root}, tree.root.right) },
	)
}
