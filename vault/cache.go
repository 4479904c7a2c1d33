// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/itemd/item"
)

const (
	cleanupInterval   = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

// read cache of live snapshots keyed by linear id
//
// entries are only written after the database write succeeded, so a
// hit is always the current live state
type liveCache struct {
	cache *cache.Cache
}

func newLiveCache() *liveCache {
	return &liveCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *liveCache) get(linearId item.LinearId) (*item.StateAndRef, bool) {
	obj, found := c.cache.Get(linearId.String())
	if !found {
		return nil, false
	}
	return copyStateAndRef(obj.(*item.StateAndRef)), true
}

func (c *liveCache) set(linearId item.LinearId, s *item.StateAndRef) {
	c.cache.Set(linearId.String(), copyStateAndRef(s), cache.DefaultExpiration)
}

func (c *liveCache) clear() {
	c.cache.Flush()
}
