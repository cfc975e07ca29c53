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
	"time"
)

// Nodes carry no parent pointer. The path recorded while descending is the
// only way back up and it is dropped when the insertion returns.
type scapegoatNode struct {
	record BanRecord
	left   *scapegoatNode
	right  *scapegoatNode
}

// ScapegoatTree is a weight-balanced index without per-node metadata.
// When an insertion lands deeper than the alpha height limit allows, the
// shallowest ancestor whose subtree is not alpha-weight-balanced is rebuilt
// into a perfectly balanced shape.
//
// After every insertion the height (in edges) is at most HeightLimit()+1.
type ScapegoatTree struct {
	root  *scapegoatNode
	size  int
	alpha float64
	stats Stats
}

// NewScapegoatTree returns an empty tree. alpha must lie in (0.5, 1); higher
// values tolerate more skew and rebuild less often.
func NewScapegoatTree(alpha float64) (*ScapegoatTree, error) {
	if math.IsNaN(alpha) || alpha <= 0.5 || alpha >= 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidAlpha, alpha)
	}
	return &ScapegoatTree{alpha: alpha}, nil
}

func (tree *ScapegoatTree) Alpha() float64 {
	return tree.alpha
}

// HeightLimit is floor(log(size) / log(1/alpha)).
func (tree *ScapegoatTree) HeightLimit() int {
	return heightLimit(tree.size, tree.alpha)
}

func heightLimit(size int, alpha float64) int {
	if size <= 1 {
		return 0
	}
	return int(math.Floor(math.Log(float64(size)) / math.Log(1/alpha)))
}

// Insert adds a ban record. Duplicate users are allowed and go right.
func (tree *ScapegoatTree) Insert(user, server string, timeOfBan time.Time) {
	leaf := &scapegoatNode{record: BanRecord{User: user, Server: server, TimeOfBan: timeOfBan}}
	tree.stats.Insertions++

	if tree.root == nil {
		tree.root = leaf
		tree.size = 1
		return
	}

	// path holds the root down to the new leaf's parent; depth == len(path).
	var path []*scapegoatNode
	for cur := tree.root; cur != nil; {
		path = append(path, cur)
		if user < cur.record.User {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}

	parent := path[len(path)-1]
	if user < parent.record.User {
		parent.left = leaf
	} else {
		parent.right = leaf
	}
	tree.size++

	depth := len(path)
	if depth <= tree.HeightLimit()+1 {
		return
	}

	goat := tree.findScapegoat(path, leaf)
	tree.rebuild(path, goat)
}

// findScapegoat walks from the leaf's parent to the root and returns the
// index in path of the shallowest ancestor that is not alpha-weight-balanced.
// Subtree sizes are accumulated on the way up, so only the sibling subtrees
// off the path are counted.
func (tree *ScapegoatTree) findScapegoat(path []*scapegoatNode, leaf *scapegoatNode) int {
	goat := -1
	child, childSize := leaf, 1
	for i := len(path) - 1; i >= 0; i-- {
		node := path[i]
		sibling := node.left
		if sibling == child {
			sibling = node.right
		}
		siblingSize := subtreeSize(sibling)
		size := 1 + childSize + siblingSize
		if !tree.isAlphaBalanced(childSize, siblingSize, size) {
			goat = i
		}
		child, childSize = node, size
	}
	if goat < 0 {
		panic(&InvariantError{
			Op:     "insert",
			Detail: fmt.Sprintf("depth %d exceeds limit %d but no ancestor is unbalanced", len(path), tree.HeightLimit()+1),
		})
	}
	return goat
}

func (tree *ScapegoatTree) isAlphaBalanced(childSize, siblingSize, size int) bool {
	limit := tree.alpha * float64(size)
	return float64(childSize) <= limit && float64(siblingSize) <= limit
}

func subtreeSize(node *scapegoatNode) int {
	if node == nil {
		return 0
	}
	return subtreeSize(node.left) + subtreeSize(node.right) + 1
}

// rebuild replaces path[goat] with a perfectly balanced copy of its subtree
// and links the copy into path[goat-1], or makes it the root.
func (tree *ScapegoatTree) rebuild(path []*scapegoatNode, goat int) {
	old := path[goat]
	records := flatten(old)
	fresh := buildBalanced(records)

	if goat == 0 {
		tree.root = fresh
	} else {
		parent := path[goat-1]
		switch old {
		case parent.left:
			parent.left = fresh
		case parent.right:
			parent.right = fresh
		default:
			panic(&InvariantError{Op: "rebuild", Detail: "scapegoat is not a child of its recorded parent"})
		}
	}

	tree.stats.Rebuilds++
	tree.stats.RebuiltNodes += len(records)
}

// flatten returns the subtree's records in key order. It uses an explicit
// stack so a degenerate subtree cannot exhaust the goroutine stack.
func flatten(node *scapegoatNode) []BanRecord {
	var (
		records []BanRecord
		stack   []*scapegoatNode
	)
	for cur := node; cur != nil || len(stack) > 0; {
		for cur != nil {
			stack = append(stack, cur)
			cur = cur.left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		records = append(records, cur.record)
		cur = cur.right
	}
	return records
}

// buildBalanced builds a tree from sorted records using the upper median as
// the root of every range. Recursion depth is log2(len(records)).
func buildBalanced(records []BanRecord) *scapegoatNode {
	if len(records) == 0 {
		return nil
	}
	mid := len(records) >> 1
	return &scapegoatNode{
		record: records[mid],
		left:   buildBalanced(records[:mid]),
		right:  buildBalanced(records[mid+1:]),
	}
}

// Query aggregates every record stored for user. A rebuild may leave equal
// keys on either side of a match, so a match continues into both children.
func (tree *ScapegoatTree) Query(user string) QueryResult {
	return queryScapegoat(tree.root, user, NotFound)
}

func queryScapegoat(node *scapegoatNode, user string, acc QueryResult) QueryResult {
	for node != nil {
		switch {
		case user < node.record.User:
			node = node.left
		case user > node.record.User:
			node = node.right
		default:
			acc = acc.add(node.record.TimeOfBan)
			acc = queryScapegoat(node.left, user, acc)
			node = node.right
		}
	}
	return acc
}

// Walk visits records in key order; equal keys come out in insertion order.
func (tree *ScapegoatTree) Walk(fn func(BanRecord) bool) {
	walkScapegoat(tree.root, fn)
}

func walkScapegoat(node *scapegoatNode, fn func(BanRecord) bool) bool {
	if node == nil {
		return true
	}
	return walkScapegoat(node.left, fn) && fn(node.record) && walkScapegoat(node.right, fn)
}

func (tree *ScapegoatTree) Summary() Summary {
	return BuildRecordSummary(tree)
}

func (tree *ScapegoatTree) Len() int {
	return tree.size
}

// Height counts nodes on the longest root-to-leaf path; an empty tree has height 0.
func (tree *ScapegoatTree) Height() int {
	return scapegoatHeight(tree.root)
}

func scapegoatHeight(node *scapegoatNode) int {
	if node == nil {
		return 0
	}
	return max(scapegoatHeight(node.left), scapegoatHeight(node.right)) + 1
}

func (tree *ScapegoatTree) Stats() Stats {
	return tree.stats
}
