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

// Package banindex keeps ban events ordered by user name in a self-balancing
// binary search tree. Two balancing strategies are provided: AVLTree keeps
// per-node balance factors and rotates, ScapegoatTree keeps no per-node
// metadata and rebuilds whole subtrees when an insertion lands too deep.
//
// Both trees accept the same user many times. Every insertion creates a new
// node and equal keys are routed to the right subtree.
package banindex

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// BanRecord is a single ban event. It is copied into the tree and never changed.
type BanRecord struct {
	User      string
	Server    string
	TimeOfBan time.Time
}

// QueryResult is the answer for one user. The zero value means not found.
type QueryResult struct {
	Found      bool
	Count      int
	MostRecent time.Time
}

// NotFound is returned for users that have no ban records.
var NotFound = QueryResult{}

// add folds one record into the result.
func (r QueryResult) add(t time.Time) QueryResult {
	if !r.Found || t.After(r.MostRecent) {
		r.MostRecent = t
	}
	r.Found = true
	r.Count++
	return r
}

// Stats counts the balancing work a tree has done since it was created.
type Stats struct {
	Insertions      int
	Rotations       int // single rotations, a double rotation counts as two
	DoubleRotations int
	Rebuilds        int
	RebuiltNodes    int
}

// Walker is anything that can enumerate its records.
type Walker interface {
	// Walk calls fn for every record in key order until fn returns false.
	Walk(fn func(BanRecord) bool)
}

// Index is the contract shared by both balancing strategies.
type Index interface {
	Walker
	Insert(user, server string, timeOfBan time.Time)
	Query(user string) QueryResult
	Summary() Summary
	Len() int
	Height() int
	Stats() Stats
}

// Strategy names a balancing strategy.
type Strategy string

const (
	StrategyAVL       Strategy = "avl"
	StrategyScapegoat Strategy = "scapegoat"
)

var (
	ErrUnknownStrategy = errors.New("unknown balancing strategy")
	ErrInvalidAlpha    = errors.New("alpha must be in the open interval (0.5, 1)")
)

// ParseStrategy maps a mode name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(name))); s {
	case StrategyAVL, StrategyScapegoat:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: %s, %s)", ErrUnknownStrategy, name, StrategyAVL, StrategyScapegoat)
	}
}

// New creates an empty index for the given strategy. alpha is only used by
// the scapegoat strategy.
func New(strategy Strategy, alpha float64) (Index, error) {
	switch strategy {
	case StrategyAVL:
		return NewAVLTree(), nil
	case StrategyScapegoat:
		return NewScapegoatTree(alpha)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(strategy))
	}
}

// InvariantError reports a broken structural invariant. It is only ever
// raised through panic because it means the tree code itself is wrong.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("banindex: invariant violated in %s: %s", e.Op, e.Detail)
}
