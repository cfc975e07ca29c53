// cache.go

/**
 * Copyright 2025 (C) Naren Yellavula - All Rights Reserved
 *
 * This source code is protected under international copyright law.  All rights
 * reserved and protected by the copyright holders.
 * This file is confidential and only available to authorized individuals with the
 * permission of the copyright holders.  If you encounter this file and do not have
 * permission, please contact the copyright holders and delete this file.
 */

package main

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/cybrota/bantree/banindex"
)

// Clean up expired answers every 5 minutes
const answerCacheCleanup = 5 * time.Minute

// NewAnswerCache creates a cache for answers to repeated queries.
func NewAnswerCache(ttl time.Duration) *cache.Cache {
	return cache.New(ttl, answerCacheCleanup)
}

func CacheAnswer(c *cache.Cache, user string, result banindex.QueryResult) {
	// Set overwrites, which is what a re-query after expiry wants
	c.Set(user, result, cache.DefaultExpiration)
}

func GetAnswer(c *cache.Cache, user string) (banindex.QueryResult, bool) {
	val, ok := c.Get(user)
	if !ok {
		return banindex.NotFound, false
	}
	return val.(banindex.QueryResult), true
}
