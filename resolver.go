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
	"github.com/patrickmn/go-cache"
	"github.com/willf/bloom"

	"github.com/cybrota/bantree/banindex"
)

// Paths a query can be answered from, cheapest first.
const (
	pathBloom   = "bloom"
	pathCache   = "cache"
	pathSummary = "summary"
	pathTree    = "tree"
)

// Resolver answers queries against a fully built index. Users the bloom
// filter has never seen are answered NotFound without touching the index;
// everything else goes through the answer cache and then either the
// aggregated summary or a tree walk.
//
// A Resolver must only be created after the build phase is over.
type Resolver struct {
	index   banindex.Index
	summary banindex.Summary // nil when walking the tree
	filter  *bloom.BloomFilter
	answers *cache.Cache
	hits    map[string]int
	onHit   func(path string, result banindex.QueryResult)
}

func NewResolver(ix banindex.Index, config QueryConfig, lookup string) *Resolver {
	r := &Resolver{
		index:   ix,
		filter:  bloom.New(config.BloomBits, config.BloomHashes),
		answers: NewAnswerCache(config.CacheTTL),
		hits:    make(map[string]int),
	}

	if lookup == lookupSummary {
		r.summary = ix.Summary()
		for user := range r.summary {
			r.filter.AddString(user)
		}
	} else {
		ix.Walk(func(rec banindex.BanRecord) bool {
			r.filter.AddString(rec.User)
			return true
		})
	}
	return r
}

// OnHit registers a callback run after every answer with the path it came from.
func (r *Resolver) OnHit(fn func(path string, result banindex.QueryResult)) {
	r.onHit = fn
}

func (r *Resolver) Resolve(user string) banindex.QueryResult {
	if !r.filter.TestString(user) {
		return r.record(pathBloom, banindex.NotFound)
	}
	if result, ok := GetAnswer(r.answers, user); ok {
		return r.record(pathCache, result)
	}

	var result banindex.QueryResult
	path := pathTree
	if r.summary != nil {
		path = pathSummary
		result = r.summary.Lookup(user)
	} else {
		result = r.index.Query(user)
	}
	CacheAnswer(r.answers, user, result)
	return r.record(path, result)
}

func (r *Resolver) record(path string, result banindex.QueryResult) banindex.QueryResult {
	r.hits[path]++
	if r.onHit != nil {
		r.onHit(path, result)
	}
	return result
}

// Hits reports how many queries each path answered.
func (r *Resolver) Hits() map[string]int {
	out := make(map[string]int, len(r.hits))
	for path, n := range r.hits {
		out[path] = n
	}
	return out
}
