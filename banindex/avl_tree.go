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

import "time"

type avlNode struct {
	record  BanRecord
	left    *avlNode
	right   *avlNode
	balance int // height(right) - height(left)
}

// AVLTree is a height-balanced index. Balance factors are maintained
// incrementally on the insertion path, so each level costs O(1) fix-up.
type AVLTree struct {
	root  *avlNode
	size  int
	stats Stats
}

func NewAVLTree() *AVLTree {
	return &AVLTree{}
}

// Insert adds a ban record. Duplicate users are allowed and go right.
func (tree *AVLTree) Insert(user, server string, timeOfBan time.Time) {
	rec := BanRecord{User: user, Server: server, TimeOfBan: timeOfBan}
	tree.root = tree.insertRecursive(tree.root, rec)
	tree.size++
	tree.stats.Insertions++
}

func (tree *AVLTree) insertRecursive(node *avlNode, rec BanRecord) *avlNode {
	if node == nil {
		return &avlNode{record: rec}
	}

	if rec.User < node.record.User {
		before, fresh := balanceOf(node.left), node.left == nil
		node.left = tree.insertRecursive(node.left, rec)
		// The left subtree got taller only if it is new or went from level to leaning.
		if fresh || (before == 0 && node.left.balance != 0) {
			node.balance--
		}
	} else {
		before, fresh := balanceOf(node.right), node.right == nil
		node.right = tree.insertRecursive(node.right, rec)
		if fresh || (before == 0 && node.right.balance != 0) {
			node.balance++
		}
	}

	return tree.rebalance(node)
}

func balanceOf(node *avlNode) int {
	if node == nil {
		return 0
	}
	return node.balance
}

func (tree *AVLTree) rebalance(node *avlNode) *avlNode {
	switch {
	case node.balance < -1:
		if node.left.balance <= 0 {
			return tree.rotateRight(node)
		}
		return tree.rotateLeftRight(node)
	case node.balance > 1:
		if node.right.balance >= 0 {
			return tree.rotateLeft(node)
		}
		return tree.rotateRightLeft(node)
	}
	return node
}

// rotateLeft lifts node.right into node's place. Balance factors are
// recomputed from the pre-rotation factors, which is exact for any shape.
func (tree *AVLTree) rotateLeft(node *avlNode) *avlNode {
	pivot := node.right

	node.right = pivot.left
	pivot.left = node

	node.balance = node.balance - 1 - max(pivot.balance, 0)
	pivot.balance = pivot.balance - 1 + min(node.balance, 0)

	tree.stats.Rotations++
	return pivot
}

func (tree *AVLTree) rotateRight(node *avlNode) *avlNode {
	pivot := node.left

	node.left = pivot.right
	pivot.right = node

	node.balance = node.balance + 1 - min(pivot.balance, 0)
	pivot.balance = pivot.balance + 1 + max(node.balance, 0)

	tree.stats.Rotations++
	return pivot
}

// rotateLeftRight handles a left-heavy node whose left child leans right.
// The grandchild becomes the subtree root; the final factors of the three
// touched nodes depend only on the grandchild's factor before the rotation.
func (tree *AVLTree) rotateLeftRight(node *avlNode) *avlNode {
	child := node.left
	grand := child.right
	prior := grand.balance

	child.right = grand.left
	node.left = grand.right
	grand.left = child
	grand.right = node

	switch prior {
	case -1:
		child.balance, node.balance = 0, 1
	case 0:
		child.balance, node.balance = 0, 0
	case 1:
		child.balance, node.balance = -1, 0
	default:
		panic(&InvariantError{Op: "rotateLeftRight", Detail: "grandchild balance out of range"})
	}
	grand.balance = 0

	tree.stats.Rotations += 2
	tree.stats.DoubleRotations++
	return grand
}

// rotateRightLeft is the mirror of rotateLeftRight.
func (tree *AVLTree) rotateRightLeft(node *avlNode) *avlNode {
	child := node.right
	grand := child.left
	prior := grand.balance

	child.left = grand.right
	node.right = grand.left
	grand.right = child
	grand.left = node

	switch prior {
	case 1:
		child.balance, node.balance = 0, -1
	case 0:
		child.balance, node.balance = 0, 0
	case -1:
		child.balance, node.balance = 1, 0
	default:
		panic(&InvariantError{Op: "rotateRightLeft", Detail: "grandchild balance out of range"})
	}
	grand.balance = 0

	tree.stats.Rotations += 2
	tree.stats.DoubleRotations++
	return grand
}

// Query aggregates every record stored for user. Equal keys may sit on both
// sides of a matching node, so a match continues into both children.
func (tree *AVLTree) Query(user string) QueryResult {
	return queryAVL(tree.root, user, NotFound)
}

func queryAVL(node *avlNode, user string, acc QueryResult) QueryResult {
	for node != nil {
		switch {
		case user < node.record.User:
			node = node.left
		case user > node.record.User:
			node = node.right
		default:
			acc = acc.add(node.record.TimeOfBan)
			acc = queryAVL(node.left, user, acc)
			node = node.right
		}
	}
	return acc
}

// Walk visits records in key order; equal keys come out in insertion order.
func (tree *AVLTree) Walk(fn func(BanRecord) bool) {
	walkAVL(tree.root, fn)
}

func walkAVL(node *avlNode, fn func(BanRecord) bool) bool {
	if node == nil {
		return true
	}
	return walkAVL(node.left, fn) && fn(node.record) && walkAVL(node.right, fn)
}

func (tree *AVLTree) Summary() Summary {
	return BuildRecordSummary(tree)
}

func (tree *AVLTree) Len() int {
	return tree.size
}

// Height counts nodes on the longest root-to-leaf path; an empty tree has height 0.
func (tree *AVLTree) Height() int {
	return avlHeight(tree.root)
}

func avlHeight(node *avlNode) int {
	if node == nil {
		return 0
	}
	return max(avlHeight(node.left), avlHeight(node.right)) + 1
}

func (tree *AVLTree) Stats() Stats {
	return tree.stats
}
