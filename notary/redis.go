// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notary

import (
	"context"
	"encoding/hex"

	"github.com/redis/go-redis/v9"

	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/merkle"
)

const claimKeyPrefix = "claim:"

// set the holder if absent, then report the holder
var reserveScript = redis.NewScript(`
local key = KEYS[1]
local txid = ARGV[1]

if redis.call('SETNX', key, txid) == 1 then
	return txid
end

return redis.call('GET', key)
`)

// RedisStore - claims shared by several authority processes through a
// redis server
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore - use an existing client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Reserve - record txId against ref unless another transaction is there
func (store *RedisStore) Reserve(ctx context.Context, ref item.StateRef, txId merkle.Digest) (merkle.Digest, error) {
	key := claimKeyPrefix + hex.EncodeToString(ref.Bytes())

	result, err := reserveScript.Run(ctx, store.client, []string{key}, txId.String()).Text()
	if nil != err {
		return merkle.Digest{}, err
	}

	holder := merkle.Digest{}
	if err := holder.UnmarshalText([]byte(result)); nil != err {
		return merkle.Digest{}, fault.ErrDatabaseCorrupt
	}
	return holder, nil
}

// Close - close the client
func (store *RedisStore) Close() error {
	return store.client.Close()
}
