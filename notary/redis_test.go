// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notary_test

import (
	"context"
	"encoding/hex"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/fixtures"
	"github.com/bitmark-inc/itemd/notary"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if "" == addr {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); nil != err {
		t.Skipf("redis not available: %v", err)
	}
	return client
}

func TestRedisClaim(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()

	r := ref(t.Name(), 0)
	client.Del(ctx, "claim:"+hex.EncodeToString(r.Bytes()))

	store := notary.NewRedisStore(client)
	defer store.Close()
	service := notary.NewService(fixtures.Notary, store)

	_, err := service.Claim(ctx, r, txId("a"))
	require.NoError(t, err, "first claim")

	_, err = service.Claim(ctx, r, txId("a"))
	assert.NoError(t, err, "repeated claim")

	_, err = service.Claim(ctx, r, txId("b"))
	assert.Equal(t, fault.ErrStateAlreadyConsumed, err, "competing claim")
}
