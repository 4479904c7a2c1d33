// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notary_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/fixtures"
	"github.com/bitmark-inc/itemd/merkle"
	"github.com/bitmark-inc/itemd/notary"
)

func TestClaim(t *testing.T) {
	service, _ := newLevelDBService(t)
	ctx := context.Background()

	r := ref("one", 0)
	receipt, err := service.Claim(ctx, r, txId("a"))
	require.NoError(t, err, "first claim")
	assert.Equal(t, r, receipt.Ref, "receipt ref")
	assert.Equal(t, txId("a"), receipt.TxId, "receipt tx id")
	assert.True(t, fixtures.Notary.Account().Equal(receipt.Notary), "receipt notary")

	err = notary.VerifyReceipt(receipt, fixtures.Notary.Account(), r, txId("a"))
	assert.NoError(t, err, "receipt verifies")

	again, err := service.Claim(ctx, r, txId("a"))
	require.NoError(t, err, "repeated claim by the same transaction")
	assert.Equal(t, receipt.Signature, again.Signature, "same receipt")

	_, err = service.Claim(ctx, r, txId("b"))
	assert.Equal(t, fault.ErrStateAlreadyConsumed, err, "competing claim")
	assert.True(t, fault.IsErrConflict(err), "conflict class")

	_, err = service.Claim(ctx, ref("one", 1), txId("b"))
	assert.NoError(t, err, "other output of the same transaction")
}

func TestClaimZeroTxId(t *testing.T) {
	service, _ := newLevelDBService(t)
	_, err := service.Claim(context.Background(), ref("zero", 0), merkle.Digest{})
	assert.Equal(t, fault.ErrMissingParameters, err)
}

func TestClaimsSurviveReopen(t *testing.T) {
	dir := fixtures.DatabaseDirectory(t.Name())
	ctx := context.Background()

	store, err := notary.NewLevelDBStore(dir)
	require.NoError(t, err, "open")
	_, err = notary.NewService(fixtures.Notary, store).Claim(ctx, ref("persist", 0), txId("a"))
	require.NoError(t, err, "claim")
	require.NoError(t, store.Close(), "close")

	store, err = notary.NewLevelDBStore(dir)
	require.NoError(t, err, "reopen")
	defer store.Close()

	_, err = notary.NewService(fixtures.Notary, store).Claim(ctx, ref("persist", 0), txId("b"))
	assert.Equal(t, fault.ErrStateAlreadyConsumed, err, "claim remembered")
}

func TestClosedStore(t *testing.T) {
	service, store := newLevelDBService(t)
	require.NoError(t, store.Close())
	_, err := service.Claim(context.Background(), ref("closed", 0), txId("a"))
	assert.Equal(t, fault.ErrNotInitialised, err)
}

func TestConcurrentClaims(t *testing.T) {
	service, _ := newLevelDBService(t)
	ctx := context.Background()
	r := ref("race", 0)

	const contenders = 16
	errs := make([]error, contenders)

	var wg sync.WaitGroup
	for i := 0; i < contenders; i += 1 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Claim(ctx, r, merkle.NewDigest([]byte{byte(i)}))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if nil == err {
			winners += 1
		} else {
			assert.Equal(t, fault.ErrStateAlreadyConsumed, err, "loser error")
		}
	}
	assert.Equal(t, 1, winners, "exactly one winner")
}

func TestVerifyReceipt(t *testing.T) {
	service, _ := newLevelDBService(t)
	r := ref("verify", 0)
	receipt, err := service.Claim(context.Background(), r, txId("a"))
	require.NoError(t, err)

	assert.Equal(t, fault.ErrMissingReceipt, notary.VerifyReceipt(nil, fixtures.Notary.Account(), r, txId("a")), "nil receipt")
	assert.Equal(t, fault.ErrWrongNotary, notary.VerifyReceipt(receipt, fixtures.Seller.Account(), r, txId("a")), "other notary")
	assert.Equal(t, fault.ErrInvalidReceipt, notary.VerifyReceipt(receipt, fixtures.Notary.Account(), ref("other", 0), txId("a")), "other ref")
	assert.Equal(t, fault.ErrInvalidReceipt, notary.VerifyReceipt(receipt, fixtures.Notary.Account(), r, txId("b")), "other tx")

	receipt.TxId = txId("b")
	assert.Equal(t, fault.ErrInvalidReceipt, notary.VerifyReceipt(receipt, fixtures.Notary.Account(), r, txId("b")), "tampered")
}
